package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// ErrDuplicateSubmission is returned when a student submits the same
// assignment twice.
var ErrDuplicateSubmission = errors.New("submission already exists for this assignment")

// AssignmentRepository handles assignment and submission data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// GetByID retrieves an assignment by its ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	a := &model.Assignment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(file_url, ''),
		        class_id, subject_id, author_id, due_at, max_score, created_at, updated_at
		 FROM assignments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Description, &a.FileURL,
		&a.ClassID, &a.SubjectID, &a.AuthorID, &a.DueAt, &a.MaxScore, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByClass retrieves assignments for a class, optionally filtered by
// subject. Nearest due date first.
func (r *AssignmentRepository) ListByClass(ctx context.Context, classID int, subjectID *int) ([]model.Assignment, error) {
	query := `SELECT id, title, COALESCE(description, ''), COALESCE(file_url, ''),
	                 class_id, subject_id, author_id, due_at, max_score, created_at, updated_at
	          FROM assignments WHERE class_id = $1`
	args := []interface{}{classID}
	if subjectID != nil {
		query += ` AND subject_id = $2`
		args = append(args, *subjectID)
	}
	query += ` ORDER BY due_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.FileURL,
			&a.ClassID, &a.SubjectID, &a.AuthorID, &a.DueAt, &a.MaxScore, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ListByAuthor retrieves assignments created by a teacher.
func (r *AssignmentRepository) ListByAuthor(ctx context.Context, authorID int) ([]model.Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(file_url, ''),
		        class_id, subject_id, author_id, due_at, max_score, created_at, updated_at
		 FROM assignments WHERE author_id = $1
		 ORDER BY due_at DESC`, authorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.FileURL,
			&a.ClassID, &a.SubjectID, &a.AuthorID, &a.DueAt, &a.MaxScore, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO assignments (title, description, file_url, class_id, subject_id, author_id, due_at, max_score)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		a.Title, a.Description, a.FileURL, a.ClassID, a.SubjectID, a.AuthorID, a.DueAt, a.MaxScore,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// Update rewrites an assignment's editable fields.
func (r *AssignmentRepository) Update(ctx context.Context, a *model.Assignment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assignments
		 SET title = $1, description = NULLIF($2, ''), file_url = NULLIF($3, ''),
		     due_at = $4, max_score = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		a.Title, a.Description, a.FileURL, a.DueAt, a.MaxScore, a.ID,
	)
	return err
}

// Delete removes an assignment and cascades to its submissions.
func (r *AssignmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	return err
}

// ─── Submissions ────────────────────────────────────────────────────

// CreateSubmission inserts a student's submission. A unique index
// enforces one submission per assignment per student.
func (r *AssignmentRepository) CreateSubmission(ctx context.Context, s *model.Submission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO submissions (assignment_id, student_id, content, file_url, submitted_at, is_late)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
		 RETURNING id`,
		s.AssignmentID, s.StudentID, s.Content, s.FileURL, s.SubmittedAt, s.IsLate,
	).Scan(&s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

// GetSubmission retrieves a student's submission for an assignment.
func (r *AssignmentRepository) GetSubmission(ctx context.Context, assignmentID, studentID int) (*model.Submission, error) {
	s := &model.Submission{}
	err := r.pool.QueryRow(ctx,
		`SELECT sub.id, sub.assignment_id, sub.student_id, st.name,
		        COALESCE(sub.content, ''), COALESCE(sub.file_url, ''),
		        sub.submitted_at, sub.is_late, sub.score, COALESCE(sub.feedback, ''),
		        sub.graded_at, sub.graded_by
		 FROM submissions sub
		 JOIN students st ON sub.student_id = st.id
		 WHERE sub.assignment_id = $1 AND sub.student_id = $2`,
		assignmentID, studentID,
	).Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.StudentName,
		&s.Content, &s.FileURL, &s.SubmittedAt, &s.IsLate, &s.Score, &s.Feedback,
		&s.GradedAt, &s.GradedBy)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSubmissionByID retrieves a submission by its primary key.
func (r *AssignmentRepository) GetSubmissionByID(ctx context.Context, id int) (*model.Submission, error) {
	s := &model.Submission{}
	err := r.pool.QueryRow(ctx,
		`SELECT sub.id, sub.assignment_id, sub.student_id, st.name,
		        COALESCE(sub.content, ''), COALESCE(sub.file_url, ''),
		        sub.submitted_at, sub.is_late, sub.score, COALESCE(sub.feedback, ''),
		        sub.graded_at, sub.graded_by
		 FROM submissions sub
		 JOIN students st ON sub.student_id = st.id
		 WHERE sub.id = $1`, id,
	).Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.StudentName,
		&s.Content, &s.FileURL, &s.SubmittedAt, &s.IsLate, &s.Score, &s.Feedback,
		&s.GradedAt, &s.GradedBy)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSubmissions retrieves all submissions for an assignment, newest first.
func (r *AssignmentRepository) ListSubmissions(ctx context.Context, assignmentID int) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sub.id, sub.assignment_id, sub.student_id, st.name,
		        COALESCE(sub.content, ''), COALESCE(sub.file_url, ''),
		        sub.submitted_at, sub.is_late, sub.score, COALESCE(sub.feedback, ''),
		        sub.graded_at, sub.graded_by
		 FROM submissions sub
		 JOIN students st ON sub.student_id = st.id
		 WHERE sub.assignment_id = $1
		 ORDER BY sub.submitted_at DESC`, assignmentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.StudentName,
			&s.Content, &s.FileURL, &s.SubmittedAt, &s.IsLate, &s.Score, &s.Feedback,
			&s.GradedAt, &s.GradedBy); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// GradeSubmission records a teacher's score and feedback.
func (r *AssignmentRepository) GradeSubmission(ctx context.Context, id int, score float64, feedback string, gradedBy int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE submissions
		 SET score = $1, feedback = NULLIF($2, ''), graded_at = CURRENT_TIMESTAMP, graded_by = $3
		 WHERE id = $4`,
		score, feedback, gradedBy, id,
	)
	return err
}
