package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// ClassRepository reads and writes the classes table.
type ClassRepository struct {
	pool *pgxpool.Pool
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `id, grade_level, major_code, group_number, homeroom_teacher_id, created_at, updated_at`

func scanClass(row pgx.Row) (*model.Class, error) {
	var c model.Class
	err := row.Scan(&c.ID, &c.GradeLevel, &c.MajorCode, &c.GroupNumber,
		&c.HomeroomTeacherID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = $1`, id))
}

// List returns every class ordered the way the school reads them: grade,
// then major, then group number.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes ORDER BY grade_level, major_code, group_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Create inserts the class and fills in its generated fields.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (grade_level, major_code, group_number, homeroom_teacher_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.GradeLevel, c.MajorCode, c.GroupNumber, c.HomeroomTeacherID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes
		 SET grade_level = $1, major_code = $2, group_number = $3, homeroom_teacher_id = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		c.GradeLevel, c.MajorCode, c.GroupNumber, c.HomeroomTeacherID, c.ID)
	return err
}

func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}
