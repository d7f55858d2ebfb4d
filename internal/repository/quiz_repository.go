package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `q.id, q.title, COALESCE(q.description, ''), q.author_id,
	q.class_id, q.subject_id, q.time_limit_minutes, q.passing_score_percent,
	q.show_answers, q.scheduled_start, q.scheduled_end,
	(SELECT COUNT(*) FROM questions WHERE quiz_id = q.id),
	COALESCE((SELECT SUM(points) FROM questions WHERE quiz_id = q.id), 0),
	q.status, q.created_at, q.updated_at`

func scanQuiz(row interface{ Scan(...interface{}) error }) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.AuthorID,
		&q.ClassID, &q.SubjectID, &q.TimeLimitMinutes, &q.PassingScorePercent,
		&q.ShowAnswers, &q.ScheduledStart, &q.ScheduledEnd,
		&q.QuestionCount, &q.TotalPoints,
		&q.Status, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID retrieves a quiz by its ID.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes q WHERE q.id = $1`, id))
}

// ListPaginated retrieves quizzes with pagination. Filters by author
// and/or class when the pointers are non-nil.
func (r *QuizRepository) ListPaginated(ctx context.Context, authorID, classID *int, limit, offset int) ([]model.Quiz, int, error) {
	where := ``
	var args []interface{}
	if authorID != nil {
		args = append(args, *authorID)
		where = ` WHERE q.author_id = $` + strconv.Itoa(len(args))
	}
	if classID != nil {
		args = append(args, *classID)
		if where == "" {
			where = ` WHERE`
		} else {
			where += ` AND`
		}
		where += ` q.class_id = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes q`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := `SELECT ` + quizColumns + ` FROM quizzes q` + where +
		` ORDER BY q.created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, 0, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, total, rows.Err()
}

// ListPublishedForClass retrieves published quizzes a class can see.
// Used for the student lobby.
func (r *QuizRepository) ListPublishedForClass(ctx context.Context, classID int) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes q
		 WHERE q.class_id = $1 AND q.status = $2
		 ORDER BY q.scheduled_start ASC NULLS LAST, q.created_at DESC`,
		classID, model.QuizStatusPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

// ListPublished retrieves every published quiz. Used to prewarm the
// Redis caches at startup.
func (r *QuizRepository) ListPublished(ctx context.Context) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes q WHERE q.status = $1`,
		model.QuizStatusPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

// Create inserts a new quiz in DRAFT state.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (id, title, description, author_id, class_id, subject_id,
		        time_limit_minutes, passing_score_percent, show_answers,
		        scheduled_start, scheduled_end, status)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at, updated_at`,
		q.ID, q.Title, q.Description, q.AuthorID, q.ClassID, q.SubjectID,
		q.TimeLimitMinutes, q.PassingScorePercent, q.ShowAnswers,
		q.ScheduledStart, q.ScheduledEnd, model.QuizStatusDraft,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
}

// Update rewrites a quiz's editable fields.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET title = $1, description = NULLIF($2, ''), time_limit_minutes = $3,
		     passing_score_percent = $4, show_answers = $5,
		     scheduled_start = $6, scheduled_end = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		q.Title, q.Description, q.TimeLimitMinutes,
		q.PassingScorePercent, q.ShowAnswers,
		q.ScheduledStart, q.ScheduledEnd, q.ID,
	)
	return err
}

// UpdateStatus transitions a quiz between lifecycle states.
func (r *QuizRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.QuizStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id,
	)
	return err
}

// Delete removes a quiz and everything hanging off it.
func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}
