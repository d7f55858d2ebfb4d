package model

import "time"

// GradeSource indicates where a gradebook entry came from.
type GradeSource string

const (
	GradeSourceQuiz       GradeSource = "QUIZ"
	GradeSourceAssignment GradeSource = "ASSIGNMENT"
	GradeSourceManual     GradeSource = "MANUAL"
)

// Grade is one gradebook entry: a percentage score a student earned in a
// subject, traced back to its source.
type Grade struct {
	ID          int         `json:"id"`
	StudentID   int         `json:"student_id"`
	StudentName string      `json:"student_name,omitempty"`
	ClassID     int         `json:"class_id"`
	SubjectID   int         `json:"subject_id"`
	Source      GradeSource `json:"source"`
	SourceID    string      `json:"source_id,omitempty"`
	Label       string      `json:"label"`
	Score       float64     `json:"score"`
	RecordedBy  int         `json:"recorded_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateGradeRequest is the payload for recording a manual grade entry.
type CreateGradeRequest struct {
	StudentID int     `json:"student_id" binding:"required"`
	ClassID   int     `json:"class_id" binding:"required"`
	SubjectID int     `json:"subject_id" binding:"required"`
	Label     string  `json:"label" binding:"required,min=2,max=100"`
	Score     float64 `json:"score" binding:"min=0,max=100"`
}

// UpdateGradeRequest is the payload for editing a manual grade entry.
type UpdateGradeRequest struct {
	Label string  `json:"label" binding:"required,min=2,max=100"`
	Score float64 `json:"score" binding:"min=0,max=100"`
}

// GradeSummary is the per-student rollup for one subject: the average of
// all entries plus its letter grade.
type GradeSummary struct {
	StudentID   int     `json:"student_id"`
	StudentName string  `json:"student_name"`
	NISN        string  `json:"nisn"`
	EntryCount  int     `json:"entry_count"`
	Average     float64 `json:"average"`
	Letter      string  `json:"letter"`
}
