package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

var ErrDuplicateNISN = errors.New("student with this NISN already exists")

// StudentRepository reads and writes the students table.
type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, nis, nisn, name, gender, COALESCE(email, ''), COALESCE(guardian_name, ''),
	password_hash, class_id, created_at, updated_at`

func scanStudent(row pgx.Row) (*model.Student, error) {
	var s model.Student
	err := row.Scan(&s.ID, &s.NIS, &s.NISN, &s.Name, &s.Gender, &s.Email, &s.GuardianName,
		&s.PasswordHash, &s.ClassID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// isUniqueViolation reports whether err is Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// GetByID also resolves the display name of the student's class, e.g.
// "XI TKJ 2".
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	var s model.Student
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.nis, s.nisn, s.name, s.gender, COALESCE(s.email, ''), COALESCE(s.guardian_name, ''),
		        s.password_hash, s.class_id,
		        CONCAT(c.grade_level, ' ', c.major_code, ' ', c.group_number),
		        s.created_at, s.updated_at
		 FROM students s JOIN classes c ON s.class_id = c.id
		 WHERE s.id = $1`, id,
	).Scan(&s.ID, &s.NIS, &s.NISN, &s.Name, &s.Gender, &s.Email, &s.GuardianName,
		&s.PasswordHash, &s.ClassID, &s.ClassName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByNISN is the login lookup; NISN is the student's national ID and the
// username on the student portal.
func (r *StudentRepository) GetByNISN(ctx context.Context, nisn string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE nisn = $1`, nisn))
}

// ListPaginated returns one page of students plus the unfiltered total,
// optionally scoped to a class.
func (r *StudentRepository) ListPaginated(ctx context.Context, classID *int, limit, offset int) ([]model.Student, int, error) {
	where := ``
	var filterArgs []interface{}
	if classID != nil {
		where = ` WHERE class_id = $1`
		filterArgs = append(filterArgs, *classID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, filterArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(filterArgs)
	query := `SELECT ` + studentColumns + ` FROM students` + where +
		` ORDER BY name LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args := append(filterArgs, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *s)
	}
	return students, total, rows.Err()
}

func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (nis, nisn, name, gender, email, guardian_name, password_hash, class_id)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)
		 RETURNING id, created_at, updated_at`,
		s.NIS, s.NISN, s.Name, s.Gender, s.Email, s.GuardianName, s.PasswordHash, s.ClassID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateNISN
	}
	return err
}

// Update writes the student's profile fields. The password hash has its
// own method so profile edits can never blank it.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET nis = $1, nisn = $2, name = $3, gender = $4, email = NULLIF($5, ''),
		     guardian_name = NULLIF($6, ''), class_id = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		s.NIS, s.NISN, s.Name, s.Gender, s.Email, s.GuardianName, s.ClassID, s.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateNISN
	}
	return err
}

func (r *StudentRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id)
	return err
}

func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}
