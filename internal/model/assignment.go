package model

import "time"

// Assignment represents a homework assignment for a class+subject.
type Assignment struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	ClassID     int       `json:"class_id"`
	SubjectID   int       `json:"subject_id"`
	AuthorID    int       `json:"author_id"`
	DueAt       time.Time `json:"due_at"`
	MaxScore    float64   `json:"max_score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateAssignmentRequest is the payload for creating an assignment.
type CreateAssignmentRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"omitempty,max=20000"`
	FileURL     string    `json:"file_url" binding:"omitempty,max=500"`
	ClassID     int       `json:"class_id" binding:"required"`
	SubjectID   int       `json:"subject_id" binding:"required"`
	DueAt       time.Time `json:"due_at" binding:"required"`
	MaxScore    float64   `json:"max_score" binding:"required,gt=0"`
}

// UpdateAssignmentRequest is the payload for updating an assignment.
type UpdateAssignmentRequest struct {
	Title       string     `json:"title" binding:"omitempty,min=3,max=255"`
	Description string     `json:"description" binding:"omitempty,max=20000"`
	FileURL     string     `json:"file_url" binding:"omitempty,max=500"`
	DueAt       *time.Time `json:"due_at" binding:"omitempty"`
	MaxScore    *float64   `json:"max_score" binding:"omitempty,gt=0"`
}

// Submission is a student's answer to an assignment. IsLate is derived
// from the assignment due date at submission time.
type Submission struct {
	ID           int        `json:"id"`
	AssignmentID int        `json:"assignment_id"`
	StudentID    int        `json:"student_id"`
	StudentName  string     `json:"student_name,omitempty"`
	Content      string     `json:"content,omitempty"`
	FileURL      string     `json:"file_url,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	IsLate       bool       `json:"is_late"`
	Score        *float64   `json:"score,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
	GradedBy     *int       `json:"graded_by,omitempty"`
}

// SubmitAssignmentRequest is the payload for a student submission.
type SubmitAssignmentRequest struct {
	Content string `json:"content" binding:"omitempty,max=50000"`
	FileURL string `json:"file_url" binding:"omitempty,max=500"`
}

// GradeSubmissionRequest is the payload for a teacher grading a submission.
type GradeSubmissionRequest struct {
	Score    float64 `json:"score" binding:"min=0"`
	Feedback string  `json:"feedback" binding:"omitempty,max=4000"`
}
