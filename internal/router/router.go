package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/handler"
	"github.com/smklab/lms-backend/internal/middleware"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	StudentPortal *handler.StudentPortalHandler
	StudentMgmt   *handler.StudentManagementHandler
	User          *handler.UserHandler
	Role          *handler.RoleHandler
	Class         *handler.ClassHandler
	Subject       *handler.SubjectHandler
	Major         *handler.MajorHandler
	Enrollment    *handler.EnrollmentHandler
	Material      *handler.MaterialHandler
	Assignment    *handler.AssignmentHandler
	Quiz          *handler.QuizHandler
	Question      *handler.QuestionHandler
	Grade         *handler.GradeHandler
	Announcement  *handler.AnnouncementHandler
	Media         *handler.MediaHandler
	Setting       *handler.SettingHandler
	Dashboard     *handler.DashboardHandler
	Monitor       *handler.MonitorHandler
	System        *handler.SystemHandler
	WS            *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", "./uploads")
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Public Group (No Auth) ────────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/settings", handlers.Setting.GetPublicSettings)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Auth Group (Public, Rate Limited) ─────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/staff/login", handlers.Auth.StaffLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/staff/me", middleware.RequireStaffJWT(authService), handlers.Auth.GetStaffProfile)
	}

	// ─── Student Group (JWT + Single Device) ───────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/lobby", handlers.StudentPortal.GetLobby)

		studentAPI.POST("/quizzes/:quiz_id/attempts", handlers.StudentPortal.StartAttempt)
		studentAPI.GET("/quizzes/:quiz_id/attempts/state", handlers.StudentPortal.GetAttemptState)
		studentAPI.PUT("/quizzes/:quiz_id/attempts/answers", handlers.StudentPortal.SaveAnswer)
		studentAPI.POST("/quizzes/:quiz_id/attempts/submit", handlers.StudentPortal.SubmitAttempt)
		studentAPI.GET("/quizzes/:quiz_id/attempts/result", handlers.StudentPortal.GetAttemptResult)

		studentAPI.GET("/materials", handlers.StudentPortal.ListMaterials)
		studentAPI.GET("/assignments", handlers.StudentPortal.ListAssignments)
		studentAPI.POST("/assignments/:id/submission", handlers.StudentPortal.SubmitAssignment)
		studentAPI.GET("/assignments/:id/submission", handlers.StudentPortal.GetMySubmission)
		studentAPI.GET("/grades", handlers.StudentPortal.ListGrades)
		studentAPI.GET("/announcements", handlers.StudentPortal.ListAnnouncements)
	}

	// ─── WebSocket Group (Student WS Auth) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStudentWSAuth(authService))
	{
		ws.GET("/student/quizzes/:quiz_id/stream", handlers.WS.AttemptStream)
	}

	// ─── Staff Group (JWT + RBAC) ──────────────────────────────────────
	staffAPI := router.Group("/api/v1/staff")
	staffAPI.Use(middleware.RequireStaffJWT(authService))
	{
		// Media upload
		staffAPI.POST("/media/upload",
			middleware.RequirePermission(string(model.PermissionMediaUpload)),
			handlers.Media.UploadMedia,
		)

		// Class management
		staffAPI.GET("/classes",
			middleware.RequirePermission(string(model.PermissionClassesRead)),
			handlers.Class.ListClasses,
		)
		staffAPI.POST("/classes",
			middleware.RequirePermission(string(model.PermissionClassesWrite)),
			handlers.Class.CreateClass,
		)
		staffAPI.PUT("/classes/:id",
			middleware.RequirePermission(string(model.PermissionClassesWrite)),
			handlers.Class.UpdateClass,
		)
		staffAPI.DELETE("/classes/:id",
			middleware.RequirePermission(string(model.PermissionClassesWrite)),
			handlers.Class.DeleteClass,
		)
		staffAPI.GET("/classes/:id/enrollments",
			middleware.RequirePermission(string(model.PermissionEnrollmentsRead)),
			handlers.Enrollment.ListEnrollments,
		)

		// Student management
		staffAPI.GET("/students",
			middleware.RequirePermission(string(model.PermissionStudentsRead)),
			handlers.StudentMgmt.ListStudents,
		)
		staffAPI.POST("/students",
			middleware.RequirePermission(string(model.PermissionStudentsWrite)),
			handlers.StudentMgmt.CreateStudent,
		)
		staffAPI.PUT("/students/:id",
			middleware.RequirePermission(string(model.PermissionStudentsWrite)),
			handlers.StudentMgmt.UpdateStudent,
		)
		staffAPI.DELETE("/students/:id",
			middleware.RequirePermission(string(model.PermissionStudentsWrite)),
			handlers.StudentMgmt.DeleteStudent,
		)
		staffAPI.POST("/students/:id/reset-session",
			middleware.RequirePermission(string(model.PermissionStudentsResetSession)),
			handlers.StudentMgmt.ResetStudentSession,
		)

		// Staff user management
		staffAPI.GET("/users",
			middleware.RequirePermission(string(model.PermissionUsersRead)),
			handlers.User.ListUsers,
		)
		staffAPI.POST("/users",
			middleware.RequirePermission(string(model.PermissionUsersWrite)),
			handlers.User.CreateUser,
		)
		staffAPI.PUT("/users/:id",
			middleware.RequirePermission(string(model.PermissionUsersWrite)),
			handlers.User.UpdateUser,
		)
		staffAPI.DELETE("/users/:id",
			middleware.RequirePermission(string(model.PermissionUsersWrite)),
			handlers.User.DeleteUser,
		)

		// Role management
		staffAPI.GET("/roles",
			middleware.RequireAnyPermission(string(model.PermissionRolesRead), string(model.PermissionUsersRead)),
			handlers.Role.ListRoles,
		)
		staffAPI.GET("/roles/permissions",
			middleware.RequirePermission(string(model.PermissionRolesRead)),
			handlers.Role.ListPermissions,
		)
		staffAPI.POST("/roles",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.Role.CreateRole,
		)
		staffAPI.PUT("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.Role.UpdateRole,
		)
		staffAPI.DELETE("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.Role.DeleteRole,
		)

		// Subjects
		subjectsGroup := staffAPI.Group("/subjects")
		{
			subjectsGroup.GET("", middleware.RequirePermission(string(model.PermissionSubjectsRead)), handlers.Subject.ListSubjects)
			subjectsGroup.POST("", middleware.RequirePermission(string(model.PermissionSubjectsWrite)), handlers.Subject.CreateSubject)
			subjectsGroup.PUT("/:id", middleware.RequirePermission(string(model.PermissionSubjectsWrite)), handlers.Subject.UpdateSubject)
			subjectsGroup.DELETE("/:id", middleware.RequirePermission(string(model.PermissionSubjectsWrite)), handlers.Subject.DeleteSubject)
		}

		// Majors
		majorsGroup := staffAPI.Group("/majors")
		{
			majorsGroup.GET("", middleware.RequirePermission(string(model.PermissionMajorsRead)), handlers.Major.ListMajors)
			majorsGroup.POST("", middleware.RequirePermission(string(model.PermissionMajorsWrite)), handlers.Major.CreateMajor)
			majorsGroup.PUT("/:id", middleware.RequirePermission(string(model.PermissionMajorsWrite)), handlers.Major.UpdateMajor)
			majorsGroup.DELETE("/:id", middleware.RequirePermission(string(model.PermissionMajorsWrite)), handlers.Major.DeleteMajor)
		}

		// Enrollments and teaching assignments
		staffAPI.POST("/enrollments",
			middleware.RequirePermission(string(model.PermissionEnrollmentsWrite)),
			handlers.Enrollment.CreateEnrollment,
		)
		staffAPI.PUT("/enrollments/:id",
			middleware.RequirePermission(string(model.PermissionEnrollmentsWrite)),
			handlers.Enrollment.UpdateEnrollment,
		)
		staffAPI.DELETE("/enrollments/:id",
			middleware.RequirePermission(string(model.PermissionEnrollmentsWrite)),
			handlers.Enrollment.DeleteEnrollment,
		)
		staffAPI.GET("/teaching-assignments",
			middleware.RequirePermission(string(model.PermissionEnrollmentsRead)),
			handlers.Enrollment.ListTeachingAssignments,
		)
		staffAPI.POST("/teaching-assignments",
			middleware.RequirePermission(string(model.PermissionEnrollmentsWrite)),
			handlers.Enrollment.CreateTeachingAssignment,
		)
		staffAPI.DELETE("/teaching-assignments/:id",
			middleware.RequirePermission(string(model.PermissionEnrollmentsWrite)),
			handlers.Enrollment.DeleteTeachingAssignment,
		)

		// Materials
		staffAPI.GET("/materials",
			middleware.RequirePermission(string(model.PermissionMaterialsRead)),
			handlers.Material.ListMaterials,
		)
		staffAPI.POST("/materials",
			middleware.RequirePermission(string(model.PermissionMaterialsWrite)),
			handlers.Material.CreateMaterial,
		)
		staffAPI.PUT("/materials/:id",
			middleware.RequirePermission(string(model.PermissionMaterialsWrite)),
			handlers.Material.UpdateMaterial,
		)
		staffAPI.DELETE("/materials/:id",
			middleware.RequirePermission(string(model.PermissionMaterialsWrite)),
			handlers.Material.DeleteMaterial,
		)

		// Assignments and submissions
		staffAPI.GET("/assignments",
			middleware.RequirePermission(string(model.PermissionAssignmentsRead)),
			handlers.Assignment.ListAssignments,
		)
		staffAPI.POST("/assignments",
			middleware.RequirePermission(string(model.PermissionAssignmentsWrite)),
			handlers.Assignment.CreateAssignment,
		)
		staffAPI.PUT("/assignments/:id",
			middleware.RequirePermission(string(model.PermissionAssignmentsWrite)),
			handlers.Assignment.UpdateAssignment,
		)
		staffAPI.DELETE("/assignments/:id",
			middleware.RequirePermission(string(model.PermissionAssignmentsWrite)),
			handlers.Assignment.DeleteAssignment,
		)
		staffAPI.GET("/assignments/:id/submissions",
			middleware.RequirePermission(string(model.PermissionAssignmentsRead)),
			handlers.Assignment.ListSubmissions,
		)
		staffAPI.POST("/submissions/:id/grade",
			middleware.RequirePermission(string(model.PermissionAssignmentsWrite)),
			handlers.Assignment.GradeSubmission,
		)

		// Quizzes
		staffAPI.GET("/quizzes",
			middleware.RequirePermission(string(model.PermissionQuizzesRead)),
			handlers.Quiz.ListQuizzes,
		)
		staffAPI.POST("/quizzes",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Quiz.CreateQuiz,
		)
		staffAPI.GET("/quizzes/:id",
			middleware.RequirePermission(string(model.PermissionQuizzesRead)),
			handlers.Quiz.GetQuiz,
		)
		staffAPI.PUT("/quizzes/:id",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Quiz.UpdateQuiz,
		)
		staffAPI.DELETE("/quizzes/:id",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Quiz.DeleteQuiz,
		)
		staffAPI.POST("/quizzes/:id/publish",
			middleware.RequirePermission(string(model.PermissionQuizzesPublish)),
			handlers.Quiz.PublishQuiz,
		)
		staffAPI.POST("/quizzes/:id/close",
			middleware.RequirePermission(string(model.PermissionQuizzesPublish)),
			handlers.Quiz.CloseQuiz,
		)
		staffAPI.POST("/quizzes/:id/archive",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Quiz.ArchiveQuiz,
		)
		staffAPI.POST("/quizzes/:id/refresh-cache",
			middleware.RequirePermission(string(model.PermissionQuizzesPublish)),
			handlers.Quiz.RefreshQuizCache,
		)
		staffAPI.GET("/quizzes/:id/attempts",
			middleware.RequirePermission(string(model.PermissionQuizzesRead)),
			handlers.Quiz.ListAttempts,
		)
		staffAPI.GET("/quizzes/:id/monitor",
			middleware.RequirePermission(string(model.PermissionQuizzesRead)),
			handlers.Monitor.MonitorQuizSSE,
		)

		// Question editing (draft quizzes only)
		staffAPI.GET("/quizzes/:id/questions",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Question.ListQuestions,
		)
		staffAPI.POST("/quizzes/:id/questions",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Question.AddQuestion,
		)
		staffAPI.PUT("/quizzes/:id/questions",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Question.ReplaceQuestions,
		)
		staffAPI.DELETE("/quizzes/:id/questions/:question_id",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Question.DeleteQuestion,
		)

		// Essay grading
		staffAPI.POST("/attempts/:attempt_id/questions/:question_id/grade",
			middleware.RequirePermission(string(model.PermissionQuizzesWrite)),
			handlers.Quiz.GradeEssay,
		)

		// Gradebook
		staffAPI.GET("/grades",
			middleware.RequirePermission(string(model.PermissionGradesRead)),
			handlers.Grade.ListGrades,
		)
		staffAPI.GET("/grades/summary",
			middleware.RequirePermission(string(model.PermissionGradesRead)),
			handlers.Grade.SummarizeGrades,
		)
		staffAPI.GET("/grades/export",
			middleware.RequirePermission(string(model.PermissionGradesExport)),
			handlers.Grade.ExportGradesCSV,
		)
		staffAPI.POST("/grades",
			middleware.RequirePermission(string(model.PermissionGradesWrite)),
			handlers.Grade.CreateGrade,
		)
		staffAPI.PUT("/grades/:id",
			middleware.RequirePermission(string(model.PermissionGradesWrite)),
			handlers.Grade.UpdateGrade,
		)
		staffAPI.DELETE("/grades/:id",
			middleware.RequirePermission(string(model.PermissionGradesWrite)),
			handlers.Grade.DeleteGrade,
		)

		// Announcements
		staffAPI.GET("/announcements", handlers.Announcement.ListAnnouncements)
		staffAPI.POST("/announcements",
			middleware.RequirePermission(string(model.PermissionAnnouncementsWrite)),
			handlers.Announcement.CreateAnnouncement,
		)
		staffAPI.PUT("/announcements/:id",
			middleware.RequirePermission(string(model.PermissionAnnouncementsWrite)),
			handlers.Announcement.UpdateAnnouncement,
		)
		staffAPI.DELETE("/announcements/:id",
			middleware.RequirePermission(string(model.PermissionAnnouncementsWrite)),
			handlers.Announcement.DeleteAnnouncement,
		)

		// Dashboard
		staffAPI.GET("/dashboard", handlers.Dashboard.GetAdminDashboard)
		staffAPI.GET("/dashboard/teacher", handlers.Dashboard.GetTeacherDashboard)

		// System monitoring
		staffAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)

		// App settings
		settingsGroup := staffAPI.Group("/settings")
		{
			settingsGroup.GET("", middleware.RequirePermission(string(model.PermissionSettingsRead)), handlers.Setting.GetAllSettings)
			settingsGroup.PUT("", middleware.RequirePermission(string(model.PermissionSettingsWrite)), handlers.Setting.UpdateSettings)
		}
	}

	return router
}
