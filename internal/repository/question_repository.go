package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// QuestionRepository handles quiz question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByQuiz retrieves all questions of a quiz in display order.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, question_text, question_type, points,
		        options, COALESCE(correct_option, ''), max_words, order_num
		 FROM questions WHERE quiz_id = $1
		 ORDER BY order_num ASC, id ASC`, quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, &q.QuestionType, &q.Points,
			&q.Options, &q.CorrectOption, &q.MaxWords, &q.OrderNum); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, quiz_id, question_text, question_type, points,
		        options, COALESCE(correct_option, ''), max_words, order_num
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuizID, &q.QuestionText, &q.QuestionType, &q.Points,
		&q.Options, &q.CorrectOption, &q.MaxWords, &q.OrderNum)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Create appends a question to a quiz.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO questions (id, quiz_id, question_text, question_type, points,
		        options, correct_option, max_words, order_num)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		q.ID, q.QuizID, q.QuestionText, q.QuestionType, q.Points,
		q.Options, q.CorrectOption, q.MaxWords, q.OrderNum,
	)
	return err
}

// ReplaceAll swaps a quiz's entire question set in a single transaction
// so a failure mid-write never leaves a half-replaced quiz.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, quizID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quizID); err != nil {
		return err
	}

	if len(questions) > 0 {
		rows := make([][]interface{}, 0, len(questions))
		for _, q := range questions {
			var correct interface{}
			if q.CorrectOption != "" {
				correct = q.CorrectOption
			}
			rows = append(rows, []interface{}{
				q.ID, quizID, q.QuestionText, q.QuestionType, q.Points,
				q.Options, correct, q.MaxWords, q.OrderNum,
			})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"questions"},
			[]string{"id", "quiz_id", "question_text", "question_type", "points",
				"options", "correct_option", "max_words", "order_num"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a question by its ID.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
