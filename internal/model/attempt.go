package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus enumerates quiz attempt states. An attempt moves
// IN_PROGRESS → SUBMITTED on submit (manual or deadline), then SUBMITTED
// → GRADED once every essay answer has been scored. Attempts without
// essay questions skip straight to GRADED.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "IN_PROGRESS"
	AttemptStatusSubmitted  AttemptStatus = "SUBMITTED"
	AttemptStatusGraded     AttemptStatus = "GRADED"
)

// Attempt represents one student's instance of taking a quiz.
type Attempt struct {
	ID               uuid.UUID     `json:"id"`
	QuizID           uuid.UUID     `json:"quiz_id"`
	StudentID        int           `json:"student_id"`
	StartedAt        time.Time     `json:"started_at"`
	SubmittedAt      *time.Time    `json:"submitted_at,omitempty"`
	TimeSpentSeconds *int          `json:"time_spent_seconds,omitempty"`
	AutoSubmitted    bool          `json:"auto_submitted"`
	Status           AttemptStatus `json:"status"`
	Score            *float64      `json:"score,omitempty"`
	Percentage       *float64      `json:"percentage,omitempty"`
	IsPassed         *bool         `json:"is_passed,omitempty"`
}

// AttemptAnswer is one persisted answer row. Unanswered questions are
// stored with an empty Answer so every attempt carries exactly one row
// per question after submission.
type AttemptAnswer struct {
	AttemptID    uuid.UUID `json:"attempt_id"`
	QuestionID   uuid.UUID `json:"question_id"`
	Answer       string    `json:"answer"`
	IsCorrect    *bool     `json:"is_correct,omitempty"`
	EarnedPoints *float64  `json:"earned_points,omitempty"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
}

// AttemptOverview is the teacher-facing row of the quiz monitor and
// result tables.
type AttemptOverview struct {
	AttemptID     uuid.UUID     `json:"attempt_id"`
	StudentID     int           `json:"student_id"`
	StudentNISN   string        `json:"student_nisn"`
	StudentName   string        `json:"student_name"`
	StartedAt     time.Time     `json:"started_at"`
	SubmittedAt   *time.Time    `json:"submitted_at,omitempty"`
	AutoSubmitted bool          `json:"auto_submitted"`
	Status        AttemptStatus `json:"status"`
	Score         *float64      `json:"score,omitempty"`
	Percentage    *float64      `json:"percentage,omitempty"`
	IsPassed      *bool         `json:"is_passed,omitempty"`
}

// AttemptState is returned on page reload so the client can restore its
// timer and draft answers. RemainingSeconds is derived from the
// server-anchored started_at, never from client clocks. Untimed quizzes
// report RemainingSeconds 0 and IsExpired false.
type AttemptState struct {
	QuizID           uuid.UUID         `json:"quiz_id"`
	AttemptID        uuid.UUID         `json:"attempt_id"`
	StudentID        int               `json:"student_id"`
	Status           AttemptStatus     `json:"status"`
	DraftAnswers     map[string]string `json:"draft_answers"`
	RemainingSeconds int               `json:"remaining_seconds"`
	IsExpired        bool              `json:"is_expired"`
}

// SaveAnswerRequest is the payload for saving a single draft answer.
type SaveAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Answer     string `json:"answer" binding:"omitempty,max=20000"`
}

// SubmitAttemptRequest carries the client's final answer set. Drafts
// already saved on the server are merged underneath these.
type SubmitAttemptRequest struct {
	Answers map[string]string `json:"answers" binding:"omitempty"`
}

// QuestionResult is the per-question breakdown of a graded attempt.
// PendingGrading is true for essay answers a teacher has not scored yet.
// Feedback is the teacher's note on a graded essay answer, if any.
type QuestionResult struct {
	QuestionID     uuid.UUID    `json:"question_id"`
	QuestionType   QuestionType `json:"question_type"`
	Points         float64      `json:"points"`
	Answer         string       `json:"answer"`
	IsCorrect      *bool        `json:"is_correct,omitempty"`
	EarnedPoints   *float64     `json:"earned_points,omitempty"`
	Feedback       *string      `json:"feedback,omitempty"`
	PendingGrading bool         `json:"pending_grading"`
}

// AttemptResult is the full result view for a completed attempt.
type AttemptResult struct {
	Attempt   Attempt          `json:"attempt"`
	Questions []QuestionResult `json:"questions"`
}

// GradeEssayRequest is the payload for a teacher scoring one essay answer.
type GradeEssayRequest struct {
	EarnedPoints float64 `json:"earned_points" binding:"min=0"`
	Feedback     string  `json:"feedback" binding:"omitempty,max=4000"`
}
