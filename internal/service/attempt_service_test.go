package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/smklab/lms-backend/internal/model"
)

func TestRemainingSeconds(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	limit := 60

	t.Run("untimed quiz never expires", func(t *testing.T) {
		remaining, expired := RemainingSeconds(start.Add(100*time.Hour), start, nil)
		assert.Equal(t, 0, remaining)
		assert.False(t, expired)
	})

	t.Run("full limit at start", func(t *testing.T) {
		remaining, expired := RemainingSeconds(start, start, &limit)
		assert.Equal(t, 3600, remaining)
		assert.False(t, expired)
	})

	t.Run("counts down mid-attempt", func(t *testing.T) {
		remaining, expired := RemainingSeconds(start.Add(25*time.Minute), start, &limit)
		assert.Equal(t, 2100, remaining)
		assert.False(t, expired)
	})

	t.Run("one second left", func(t *testing.T) {
		remaining, expired := RemainingSeconds(start.Add(60*time.Minute-time.Second), start, &limit)
		assert.Equal(t, 1, remaining)
		assert.False(t, expired)
	})

	t.Run("expired exactly at deadline", func(t *testing.T) {
		remaining, expired := RemainingSeconds(start.Add(60*time.Minute), start, &limit)
		assert.Equal(t, 0, remaining)
		assert.True(t, expired)
	})

	t.Run("expired after deadline", func(t *testing.T) {
		remaining, expired := RemainingSeconds(start.Add(2*time.Hour), start, &limit)
		assert.Equal(t, 0, remaining)
		assert.True(t, expired)
	})

	t.Run("sub-second remainder truncates", func(t *testing.T) {
		remaining, expired := RemainingSeconds(start.Add(59*time.Minute+59*time.Second+500*time.Millisecond), start, &limit)
		assert.Equal(t, 0, remaining)
		assert.False(t, expired)
	})
}

func TestGradeSubmission(t *testing.T) {
	attemptID := uuid.New()
	mcID := uuid.New()
	tfID := uuid.New()
	essayID := uuid.New()

	questions := []model.Question{
		{ID: mcID, QuestionType: model.QuestionTypeMultipleChoice, Points: 10},
		{ID: tfID, QuestionType: model.QuestionTypeTrueFalse, Points: 5},
		{ID: essayID, QuestionType: model.QuestionTypeEssay, Points: 20},
	}
	answerKey := map[string]string{
		mcID.String(): "2",
		tfID.String(): "true",
	}

	t.Run("one row per question, unanswered stored empty", func(t *testing.T) {
		merged := map[string]string{mcID.String(): "2"}
		rows, _, _, _ := gradeSubmission(attemptID, questions, merged, answerKey)

		assert.Len(t, rows, len(questions))
		byQuestion := map[uuid.UUID]model.AttemptAnswer{}
		for _, row := range rows {
			assert.Equal(t, attemptID, row.AttemptID)
			byQuestion[row.QuestionID] = row
		}
		assert.Len(t, byQuestion, len(questions))
		assert.Equal(t, "", byQuestion[tfID].Answer)
		assert.Equal(t, "", byQuestion[essayID].Answer)
	})

	t.Run("objective questions scored against the key", func(t *testing.T) {
		merged := map[string]string{
			mcID.String(): "2",
			tfID.String(): "false",
		}
		rows, objectiveScore, totalPoints, essays := gradeSubmission(attemptID, questions, merged, answerKey)

		assert.Equal(t, 10.0, objectiveScore)
		assert.Equal(t, 35.0, totalPoints)
		assert.Equal(t, 1, essays)

		for _, row := range rows {
			switch row.QuestionID {
			case mcID:
				assert.True(t, *row.IsCorrect)
				assert.Equal(t, 10.0, *row.EarnedPoints)
			case tfID:
				assert.False(t, *row.IsCorrect)
				assert.Equal(t, 0.0, *row.EarnedPoints)
			}
		}
	})

	t.Run("unanswered objective counts as wrong even when key is empty", func(t *testing.T) {
		rows, objectiveScore, _, _ := gradeSubmission(attemptID, questions, nil, map[string]string{})

		assert.Equal(t, 0.0, objectiveScore)
		for _, row := range rows {
			if row.QuestionID == essayID {
				continue
			}
			assert.False(t, *row.IsCorrect)
		}
	})

	t.Run("essay rows left ungraded for the teacher", func(t *testing.T) {
		merged := map[string]string{essayID.String(): "Jawaban panjang"}
		rows, _, _, essays := gradeSubmission(attemptID, questions, merged, answerKey)

		assert.Equal(t, 1, essays)
		for _, row := range rows {
			if row.QuestionID != essayID {
				continue
			}
			assert.Equal(t, "Jawaban panjang", row.Answer)
			assert.Nil(t, row.IsCorrect)
			assert.Nil(t, row.EarnedPoints)
		}
	})
}
