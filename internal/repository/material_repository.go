package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// MaterialRepository handles learning material data access.
type MaterialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

// GetByID retrieves a material by its ID.
func (r *MaterialRepository) GetByID(ctx context.Context, id int) (*model.Material, error) {
	m := &model.Material{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, COALESCE(content, ''), COALESCE(file_url, ''),
		        class_id, subject_id, uploader_id, created_at, updated_at
		 FROM materials WHERE id = $1`, id,
	).Scan(&m.ID, &m.Title, &m.Content, &m.FileURL,
		&m.ClassID, &m.SubjectID, &m.UploaderID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByClass retrieves materials visible to a class, optionally filtered
// by subject. Newest first.
func (r *MaterialRepository) ListByClass(ctx context.Context, classID int, subjectID *int) ([]model.Material, error) {
	query := `SELECT id, title, COALESCE(content, ''), COALESCE(file_url, ''),
	                 class_id, subject_id, uploader_id, created_at, updated_at
	          FROM materials WHERE class_id = $1`
	args := []interface{}{classID}
	if subjectID != nil {
		query += ` AND subject_id = $2`
		args = append(args, *subjectID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []model.Material
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.FileURL,
			&m.ClassID, &m.SubjectID, &m.UploaderID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// ListByUploader retrieves materials created by a specific teacher.
func (r *MaterialRepository) ListByUploader(ctx context.Context, uploaderID int) ([]model.Material, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, COALESCE(content, ''), COALESCE(file_url, ''),
		        class_id, subject_id, uploader_id, created_at, updated_at
		 FROM materials WHERE uploader_id = $1
		 ORDER BY created_at DESC`, uploaderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []model.Material
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.FileURL,
			&m.ClassID, &m.SubjectID, &m.UploaderID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// Create inserts a new material.
func (r *MaterialRepository) Create(ctx context.Context, m *model.Material) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO materials (title, content, file_url, class_id, subject_id, uploader_id)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		m.Title, m.Content, m.FileURL, m.ClassID, m.SubjectID, m.UploaderID,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// Update rewrites a material's content fields.
func (r *MaterialRepository) Update(ctx context.Context, m *model.Material) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE materials
		 SET title = $1, content = NULLIF($2, ''), file_url = NULLIF($3, ''),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		m.Title, m.Content, m.FileURL, m.ID,
	)
	return err
}

// Delete removes a material by its ID.
func (r *MaterialRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	return err
}
