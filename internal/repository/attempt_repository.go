package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// ErrAttemptNotInProgress is returned when a state transition expected an
// IN_PROGRESS attempt but found it already submitted. The first submit
// (manual or deadline sweep) wins; later ones land here.
var ErrAttemptNotInProgress = errors.New("attempt is not in progress")

// AttemptRepository handles quiz attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, quiz_id, student_id, started_at, submitted_at,
	time_spent_seconds, auto_submitted, status, score, percentage, is_passed`

func scanAttempt(row interface{ Scan(...interface{}) error }) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := row.Scan(&a.ID, &a.QuizID, &a.StudentID, &a.StartedAt, &a.SubmittedAt,
		&a.TimeSpentSeconds, &a.AutoSubmitted, &a.Status, &a.Score, &a.Percentage, &a.IsPassed)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new IN_PROGRESS attempt. A unique constraint on
// (quiz_id, student_id) makes starts idempotent: when the student already
// has an attempt the insert is a no-op and the existing row is returned.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO attempts (id, quiz_id, student_id, started_at, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (quiz_id, student_id) DO NOTHING`,
		a.ID, a.QuizID, a.StudentID, a.StartedAt, model.AttemptStatusInProgress,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByQuizAndStudent(ctx, a.QuizID, a.StudentID)
		if err != nil {
			return err
		}
		*a = *existing
		return nil
	}
	a.Status = model.AttemptStatusInProgress
	return nil
}

// GetByID retrieves an attempt by its ID.
func (r *AttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts WHERE id = $1`, id))
}

// GetByQuizAndStudent retrieves a student's attempt on a quiz.
func (r *AttemptRepository) GetByQuizAndStudent(ctx context.Context, quizID uuid.UUID, studentID int) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE quiz_id = $1 AND student_id = $2`, quizID, studentID))
}

// Submit moves an attempt from IN_PROGRESS to SUBMITTED and writes its
// answer snapshot in the same transaction. The status guard in the WHERE
// clause makes the transition happen exactly once no matter how many
// submitters race; losers get ErrAttemptNotInProgress. A failure while
// writing the answer rows rolls the transition back, so the attempt stays
// IN_PROGRESS and the student can submit again.
func (r *AttemptRepository) Submit(ctx context.Context, id uuid.UUID, submittedAt time.Time, timeSpentSeconds int, autoSubmitted bool, answers []model.AttemptAnswer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE attempts
		 SET status = $1, submitted_at = $2, time_spent_seconds = $3, auto_submitted = $4
		 WHERE id = $5 AND status = $6`,
		model.AttemptStatusSubmitted, submittedAt, timeSpentSeconds, autoSubmitted,
		id, model.AttemptStatusInProgress,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAttemptNotInProgress
	}

	batch := &pgx.Batch{}
	for _, ans := range answers {
		batch.Queue(
			`INSERT INTO attempt_answers (attempt_id, question_id, answer, is_correct, earned_points)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (attempt_id, question_id)
			 DO UPDATE SET answer = EXCLUDED.answer,
			               is_correct = EXCLUDED.is_correct,
			               earned_points = EXCLUDED.earned_points`,
			ans.AttemptID, ans.QuestionID, ans.Answer, ans.IsCorrect, ans.EarnedPoints,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range answers {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListOverdue finds IN_PROGRESS attempts on timed quizzes whose deadline
// has passed. Untimed quizzes (time_limit_minutes IS NULL) never match.
func (r *AttemptRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Attempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.quiz_id, a.student_id, a.started_at, a.submitted_at,
		        a.time_spent_seconds, a.auto_submitted, a.status, a.score, a.percentage, a.is_passed
		 FROM attempts a
		 JOIN quizzes q ON a.quiz_id = q.id
		 WHERE a.status = $1
		   AND q.time_limit_minutes IS NOT NULL
		   AND a.started_at + make_interval(mins => q.time_limit_minutes) <= $2`,
		model.AttemptStatusInProgress, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

// ListByQuiz retrieves attempts for a quiz with student names, paginated.
// Used by the teacher monitor and result views.
func (r *AttemptRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID, limit, offset int) ([]model.AttemptOverview, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attempts WHERE quiz_id = $1`, quizID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.student_id, s.nisn, s.name, a.started_at, a.submitted_at,
		        a.auto_submitted, a.status, a.score, a.percentage, a.is_passed
		 FROM attempts a
		 JOIN students s ON a.student_id = s.id
		 WHERE a.quiz_id = $1
		 ORDER BY s.name ASC
		 LIMIT $2 OFFSET $3`, quizID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var overviews []model.AttemptOverview
	for rows.Next() {
		var o model.AttemptOverview
		if err := rows.Scan(&o.AttemptID, &o.StudentID, &o.StudentNISN, &o.StudentName,
			&o.StartedAt, &o.SubmittedAt, &o.AutoSubmitted, &o.Status,
			&o.Score, &o.Percentage, &o.IsPassed); err != nil {
			return nil, 0, err
		}
		overviews = append(overviews, o)
	}
	return overviews, total, rows.Err()
}

// ─── Answers ────────────────────────────────────────────────────────

// ListAnswers retrieves all answer rows of an attempt joined with their
// questions, in display order.
func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.QuestionResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.question_type, q.points,
		        COALESCE(aa.answer, ''), aa.is_correct, aa.earned_points, aa.feedback
		 FROM attempt_answers aa
		 JOIN questions q ON aa.question_id = q.id
		 WHERE aa.attempt_id = $1
		 ORDER BY q.order_num ASC, q.id ASC`, attemptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.QuestionResult
	for rows.Next() {
		var qr model.QuestionResult
		if err := rows.Scan(&qr.QuestionID, &qr.QuestionType, &qr.Points,
			&qr.Answer, &qr.IsCorrect, &qr.EarnedPoints, &qr.Feedback); err != nil {
			return nil, err
		}
		qr.PendingGrading = qr.QuestionType == model.QuestionTypeEssay && qr.EarnedPoints == nil
		results = append(results, qr)
	}
	return results, rows.Err()
}

// GradeEssayAnswer records a teacher's score, and optional feedback, for
// one essay answer. An empty feedback string stores NULL.
func (r *AttemptRepository) GradeEssayAnswer(ctx context.Context, attemptID, questionID uuid.UUID, earnedPoints float64, feedback string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attempt_answers
		 SET earned_points = $1, feedback = NULLIF($2, ''), graded_at = CURRENT_TIMESTAMP
		 WHERE attempt_id = $3 AND question_id = $4`,
		earnedPoints, feedback, attemptID, questionID,
	)
	return err
}

// CountUngradedEssays reports how many essay answers of an attempt still
// wait for a teacher score.
func (r *AttemptRepository) CountUngradedEssays(ctx context.Context, attemptID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM attempt_answers aa
		 JOIN questions q ON aa.question_id = q.id
		 WHERE aa.attempt_id = $1 AND q.question_type = $2 AND aa.earned_points IS NULL`,
		attemptID, model.QuestionTypeEssay,
	).Scan(&count)
	return count, err
}

// SumEarnedPoints totals the earned points recorded for an attempt.
func (r *AttemptRepository) SumEarnedPoints(ctx context.Context, attemptID uuid.UUID) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(earned_points), 0) FROM attempt_answers WHERE attempt_id = $1`,
		attemptID,
	).Scan(&sum)
	return sum, err
}

// ─── Scores ─────────────────────────────────────────────────────────

// SetFinalScore writes one attempt's final score and status.
func (r *AttemptRepository) SetFinalScore(ctx context.Context, id uuid.UUID, score, percentage float64, isPassed bool, status model.AttemptStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attempts
		 SET score = $1, percentage = $2, is_passed = $3, status = $4
		 WHERE id = $5`,
		score, percentage, isPassed, status, id,
	)
	return err
}
