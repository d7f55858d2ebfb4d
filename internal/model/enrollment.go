package model

import "time"

// EnrollmentStatus enumerates student enrollment states within a class.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusMoved     EnrollmentStatus = "MOVED"
	EnrollmentStatusGraduated EnrollmentStatus = "GRADUATED"
)

// Enrollment binds a student to a class for an academic year.
type Enrollment struct {
	ID           int              `json:"id"`
	StudentID    int              `json:"student_id"`
	StudentName  string           `json:"student_name,omitempty"`
	ClassID      int              `json:"class_id"`
	ClassName    string           `json:"class_name,omitempty"`
	AcademicYear string           `json:"academic_year"`
	Status       EnrollmentStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CreateEnrollmentRequest is the payload for enrolling a student in a class.
type CreateEnrollmentRequest struct {
	StudentID    int    `json:"student_id" binding:"required"`
	ClassID      int    `json:"class_id" binding:"required"`
	AcademicYear string `json:"academic_year" binding:"required,len=9"` // e.g. 2025/2026
}

// UpdateEnrollmentRequest is the payload for changing an enrollment's status.
type UpdateEnrollmentRequest struct {
	ClassID int              `json:"class_id" binding:"required"`
	Status  EnrollmentStatus `json:"status" binding:"required,oneof=ACTIVE MOVED GRADUATED"`
}

// TeachingAssignment binds a teacher to a subject taught in a class.
type TeachingAssignment struct {
	ID          int       `json:"id"`
	TeacherID   int       `json:"teacher_id"`
	TeacherName string    `json:"teacher_name,omitempty"`
	ClassID     int       `json:"class_id"`
	ClassName   string    `json:"class_name,omitempty"`
	SubjectID   int       `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTeachingAssignmentRequest is the payload for assigning a teacher.
type CreateTeachingAssignmentRequest struct {
	TeacherID int `json:"teacher_id" binding:"required"`
	ClassID   int `json:"class_id" binding:"required"`
	SubjectID int `json:"subject_id" binding:"required"`
}
