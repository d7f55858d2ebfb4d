package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// GradeRepository handles gradebook data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

// GetByID retrieves a single grade entry.
func (r *GradeRepository) GetByID(ctx context.Context, id int) (*model.Grade, error) {
	g := &model.Grade{}
	err := r.pool.QueryRow(ctx,
		`SELECT g.id, g.student_id, s.name, g.class_id, g.subject_id,
		        g.source, COALESCE(g.source_id, ''), g.label, g.score,
		        g.recorded_by, g.created_at, g.updated_at
		 FROM grades g
		 JOIN students s ON g.student_id = s.id
		 WHERE g.id = $1`, id,
	).Scan(&g.ID, &g.StudentID, &g.StudentName, &g.ClassID, &g.SubjectID,
		&g.Source, &g.SourceID, &g.Label, &g.Score,
		&g.RecordedBy, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListByStudent retrieves a student's grade entries, optionally filtered
// by subject.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int, subjectID *int) ([]model.Grade, error) {
	query := `SELECT g.id, g.student_id, s.name, g.class_id, g.subject_id,
	                 g.source, COALESCE(g.source_id, ''), g.label, g.score,
	                 g.recorded_by, g.created_at, g.updated_at
	          FROM grades g
	          JOIN students s ON g.student_id = s.id
	          WHERE g.student_id = $1`
	args := []interface{}{studentID}
	if subjectID != nil {
		query += ` AND g.subject_id = $2`
		args = append(args, *subjectID)
	}
	query += ` ORDER BY g.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.StudentName, &g.ClassID, &g.SubjectID,
			&g.Source, &g.SourceID, &g.Label, &g.Score,
			&g.RecordedBy, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// ListByClassSubject retrieves every grade entry for a class+subject
// pair, ordered by student then recency. Feeds the gradebook table and
// the CSV export.
func (r *GradeRepository) ListByClassSubject(ctx context.Context, classID, subjectID int) ([]model.Grade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.student_id, s.name, g.class_id, g.subject_id,
		        g.source, COALESCE(g.source_id, ''), g.label, g.score,
		        g.recorded_by, g.created_at, g.updated_at
		 FROM grades g
		 JOIN students s ON g.student_id = s.id
		 WHERE g.class_id = $1 AND g.subject_id = $2
		 ORDER BY s.name ASC, g.created_at ASC`, classID, subjectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.StudentName, &g.ClassID, &g.SubjectID,
			&g.Source, &g.SourceID, &g.Label, &g.Score,
			&g.RecordedBy, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// SummarizeByClassSubject rolls up per-student averages for a
// class+subject pair. The letter band is attached by the service layer.
func (r *GradeRepository) SummarizeByClassSubject(ctx context.Context, classID, subjectID int) ([]model.GradeSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.nisn, COUNT(g.id), COALESCE(AVG(g.score), 0)
		 FROM students s
		 LEFT JOIN grades g ON g.student_id = s.id AND g.subject_id = $2
		 WHERE s.class_id = $1
		 GROUP BY s.id, s.name, s.nisn
		 ORDER BY s.name ASC`, classID, subjectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.GradeSummary
	for rows.Next() {
		var s model.GradeSummary
		if err := rows.Scan(&s.StudentID, &s.StudentName, &s.NISN, &s.EntryCount, &s.Average); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Create inserts a grade entry.
func (r *GradeRepository) Create(ctx context.Context, g *model.Grade) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, class_id, subject_id, source, source_id, label, score, recorded_by)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		g.StudentID, g.ClassID, g.SubjectID, g.Source, g.SourceID, g.Label, g.Score, g.RecordedBy,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// UpsertFromSource records a grade derived from a quiz or assignment,
// overwriting a previous entry from the same source row. Regrades land
// on the same gradebook entry instead of duplicating it.
func (r *GradeRepository) UpsertFromSource(ctx context.Context, g *model.Grade) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, class_id, subject_id, source, source_id, label, score, recorded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (student_id, source, source_id)
		 DO UPDATE SET score = EXCLUDED.score, label = EXCLUDED.label,
		               updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		g.StudentID, g.ClassID, g.SubjectID, g.Source, g.SourceID, g.Label, g.Score, g.RecordedBy,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// Update changes a manual grade entry's label and score.
func (r *GradeRepository) Update(ctx context.Context, id int, label string, score float64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE grades SET label = $1, score = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		label, score, id,
	)
	return err
}

// Delete removes a grade entry by its ID.
func (r *GradeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	return err
}
