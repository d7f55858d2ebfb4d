package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionMediaUpload allows uploading media files.
	PermissionMediaUpload Permission = "media:upload"

	// PermissionStudentsRead allows viewing student lists and details.
	PermissionStudentsRead Permission = "students:read"

	// PermissionStudentsWrite allows creating and updating students.
	PermissionStudentsWrite Permission = "students:write"

	// PermissionStudentsResetSession allows resetting a student's active session.
	PermissionStudentsResetSession Permission = "students:reset_session"

	// PermissionClassesRead allows viewing classes.
	PermissionClassesRead Permission = "classes:read"

	// PermissionClassesWrite allows creating, updating, and deleting classes.
	PermissionClassesWrite Permission = "classes:write"

	// PermissionSubjectsRead allows viewing subjects.
	PermissionSubjectsRead Permission = "subjects:read"

	// PermissionSubjectsWrite allows creating, updating, and deleting subjects.
	PermissionSubjectsWrite Permission = "subjects:write"

	// PermissionMajorsRead allows viewing majors.
	PermissionMajorsRead Permission = "majors:read"

	// PermissionMajorsWrite allows creating, updating, and deleting majors.
	PermissionMajorsWrite Permission = "majors:write"

	// PermissionEnrollmentsRead allows viewing enrollments and teaching assignments.
	PermissionEnrollmentsRead Permission = "enrollments:read"

	// PermissionEnrollmentsWrite allows managing enrollments and teaching assignments.
	PermissionEnrollmentsWrite Permission = "enrollments:write"

	// PermissionMaterialsRead allows viewing materials.
	PermissionMaterialsRead Permission = "materials:read"

	// PermissionMaterialsWrite allows creating, updating, and deleting materials.
	PermissionMaterialsWrite Permission = "materials:write"

	// PermissionAssignmentsRead allows viewing assignments and submissions.
	PermissionAssignmentsRead Permission = "assignments:read"

	// PermissionAssignmentsWrite allows creating assignments and grading submissions.
	PermissionAssignmentsWrite Permission = "assignments:write"

	// PermissionQuizzesRead allows viewing quizzes and attempt results.
	PermissionQuizzesRead Permission = "quizzes:read"

	// PermissionQuizzesWrite allows creating quizzes, editing questions, and grading essays.
	PermissionQuizzesWrite Permission = "quizzes:write"

	// PermissionQuizzesPublish allows publishing quizzes to students.
	PermissionQuizzesPublish Permission = "quizzes:publish"

	// PermissionGradesRead allows viewing the gradebook.
	PermissionGradesRead Permission = "grades:read"

	// PermissionGradesWrite allows recording manual gradebook entries.
	PermissionGradesWrite Permission = "grades:write"

	// PermissionGradesExport allows exporting the gradebook as CSV.
	PermissionGradesExport Permission = "grades:export"

	// PermissionAnnouncementsWrite allows creating, updating, and deleting announcements.
	PermissionAnnouncementsWrite Permission = "announcements:write"

	// PermissionUsersRead allows viewing staff user lists and details.
	PermissionUsersRead Permission = "users:read"

	// PermissionUsersWrite allows creating, updating, and deleting staff users.
	PermissionUsersWrite Permission = "users:write"

	// PermissionRolesRead allows viewing roles and permissions.
	PermissionRolesRead Permission = "roles:read"

	// PermissionRolesWrite allows creating, updating, and deleting roles.
	PermissionRolesWrite Permission = "roles:write"

	// PermissionSettingsRead allows viewing application settings.
	PermissionSettingsRead Permission = "settings:read"

	// PermissionSettingsWrite allows editing application settings.
	PermissionSettingsWrite Permission = "settings:write"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionMediaUpload,
	PermissionStudentsRead,
	PermissionStudentsWrite,
	PermissionStudentsResetSession,
	PermissionClassesRead,
	PermissionClassesWrite,
	PermissionSubjectsRead,
	PermissionSubjectsWrite,
	PermissionMajorsRead,
	PermissionMajorsWrite,
	PermissionEnrollmentsRead,
	PermissionEnrollmentsWrite,
	PermissionMaterialsRead,
	PermissionMaterialsWrite,
	PermissionAssignmentsRead,
	PermissionAssignmentsWrite,
	PermissionQuizzesRead,
	PermissionQuizzesWrite,
	PermissionQuizzesPublish,
	PermissionGradesRead,
	PermissionGradesWrite,
	PermissionGradesExport,
	PermissionAnnouncementsWrite,
	PermissionUsersRead,
	PermissionUsersWrite,
	PermissionRolesRead,
	PermissionRolesWrite,
	PermissionSettingsRead,
	PermissionSettingsWrite,
}
