package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// QuestionType enumerates supported question kinds. Essay answers are
// graded manually by teachers; the other types are auto-scored.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionTypeEssay          QuestionType = "ESSAY"
)

// IsObjective reports whether the question type is auto-scored.
func (t QuestionType) IsObjective() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeTrueFalse
}

// Question represents a single quiz question.
type Question struct {
	ID            uuid.UUID       `json:"id"`
	QuizID        uuid.UUID       `json:"quiz_id"`
	QuestionText  string          `json:"question_text"`
	QuestionType  QuestionType    `json:"question_type"`
	Points        float64         `json:"points"`
	Options       json.RawMessage `json:"options,omitempty"`
	CorrectOption string          `json:"correct_option,omitempty"`
	MaxWords      *int            `json:"max_words,omitempty"`
	OrderNum      int             `json:"order_num"`
}

// QuestionForStudent is a question as delivered to students. Options keep
// their is_correct flags only when the quiz reveals answers during the
// attempt.
type QuestionForStudent struct {
	ID           uuid.UUID       `json:"id"`
	QuestionText string          `json:"question_text"`
	QuestionType QuestionType    `json:"question_type"`
	Points       float64         `json:"points"`
	Options      json.RawMessage `json:"options,omitempty"`
	MaxWords     *int            `json:"max_words,omitempty"`
	OrderNum     int             `json:"order_num"`
}

// QuestionOption is one selectable option of a choice question.
type QuestionOption struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct,omitempty"`
}

// AddQuestionRequest is the payload for adding a question to a quiz.
type AddQuestionRequest struct {
	QuestionText  string          `json:"question_text" binding:"required,min=1,max=4000"`
	QuestionType  string          `json:"question_type" binding:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE ESSAY"`
	Points        float64         `json:"points" binding:"required,gt=0"`
	Options       json.RawMessage `json:"options" binding:"omitempty"`
	CorrectOption string          `json:"correct_option" binding:"omitempty,max=10"`
	MaxWords      *int            `json:"max_words" binding:"omitempty,min=1"`
	OrderNum      int             `json:"order_num" binding:"min=0"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing questions.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"dive"`
}
