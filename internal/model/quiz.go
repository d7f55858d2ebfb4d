package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizStatus enumerates the possible states of a quiz.
type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "DRAFT"
	QuizStatusPublished QuizStatus = "PUBLISHED"
	QuizStatusClosed    QuizStatus = "CLOSED"
	QuizStatusArchived  QuizStatus = "ARCHIVED"
)

// Quiz represents a quiz entity. TimeLimitMinutes is nil for untimed
// quizzes, which never auto-submit.
type Quiz struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	AuthorID            int        `json:"author_id"`
	ClassID             int        `json:"class_id"`
	SubjectID           int        `json:"subject_id"`
	TimeLimitMinutes    *int       `json:"time_limit_minutes,omitempty"`
	PassingScorePercent float64    `json:"passing_score_percent"`
	ShowAnswers         bool       `json:"show_answers_during_attempt"`
	ScheduledStart      *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd        *time.Time `json:"scheduled_end,omitempty"`
	QuestionCount       int        `json:"question_count"`
	TotalPoints         float64    `json:"total_points"`
	Status              QuizStatus `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// CreateQuizRequest is the payload for creating a new quiz.
type CreateQuizRequest struct {
	Title               string     `json:"title" binding:"required,min=3,max=255"`
	Description         string     `json:"description" binding:"omitempty,max=2000"`
	ClassID             int        `json:"class_id" binding:"required"`
	SubjectID           int        `json:"subject_id" binding:"required"`
	TimeLimitMinutes    *int       `json:"time_limit_minutes" binding:"omitempty,min=1,max=480"`
	PassingScorePercent float64    `json:"passing_score_percent" binding:"min=0,max=100"`
	ShowAnswers         bool       `json:"show_answers_during_attempt"`
	ScheduledStart      *time.Time `json:"scheduled_start" binding:"omitempty"`
	ScheduledEnd        *time.Time `json:"scheduled_end" binding:"omitempty,gtfield=ScheduledStart"`
}

// UpdateQuizRequest is the payload for updating an existing draft quiz.
type UpdateQuizRequest struct {
	Title               string     `json:"title" binding:"omitempty,min=3,max=255"`
	Description         string     `json:"description" binding:"omitempty,max=2000"`
	TimeLimitMinutes    *int       `json:"time_limit_minutes" binding:"omitempty,min=1,max=480"`
	PassingScorePercent *float64   `json:"passing_score_percent" binding:"omitempty,min=0,max=100"`
	ShowAnswers         *bool      `json:"show_answers_during_attempt" binding:"omitempty"`
	ScheduledStart      *time.Time `json:"scheduled_start" binding:"omitempty"`
	ScheduledEnd        *time.Time `json:"scheduled_end" binding:"omitempty,gtfield=ScheduledStart"`
}

// QuizPayload is the Redis-cached payload sent to students during an
// attempt. Option correctness flags are stripped unless the quiz has
// show_answers_during_attempt enabled.
type QuizPayload struct {
	QuizID              uuid.UUID            `json:"quiz_id"`
	Title               string               `json:"title"`
	TimeLimitMinutes    *int                 `json:"time_limit_minutes,omitempty"`
	PassingScorePercent float64              `json:"passing_score_percent"`
	TotalPoints         float64              `json:"total_points"`
	Questions           []QuestionForStudent `json:"questions"`
}
