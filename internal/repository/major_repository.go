package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// MajorRepository handles major (jurusan) data access.
type MajorRepository struct {
	pool *pgxpool.Pool
}

// NewMajorRepository creates a new MajorRepository.
func NewMajorRepository(pool *pgxpool.Pool) *MajorRepository {
	return &MajorRepository{pool: pool}
}

// List retrieves all majors.
func (r *MajorRepository) List(ctx context.Context) ([]model.Major, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, long_name, created_at, updated_at FROM majors ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []model.Major
	for rows.Next() {
		var m model.Major
		if err := rows.Scan(&m.ID, &m.Code, &m.LongName, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}

// Create inserts a new major.
func (r *MajorRepository) Create(ctx context.Context, m *model.Major) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO majors (code, long_name) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		m.Code, m.LongName,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// Update modifies an existing major.
func (r *MajorRepository) Update(ctx context.Context, m *model.Major) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE majors SET code = $1, long_name = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		m.Code, m.LongName, m.ID,
	)
	return err
}

// Delete removes a major by its ID.
func (r *MajorRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM majors WHERE id = $1`, id)
	return err
}
