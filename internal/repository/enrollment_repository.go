package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// EnrollmentRepository handles enrollment and teaching assignment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// GetByID retrieves an enrollment by its ID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT e.id, e.student_id, s.name, e.class_id,
		        CONCAT(c.grade_level, ' ', c.major_code, ' ', c.group_number),
		        e.academic_year, e.status, e.created_at, e.updated_at
		 FROM enrollments e
		 JOIN students s ON e.student_id = s.id
		 JOIN classes c ON e.class_id = c.id
		 WHERE e.id = $1`, id,
	).Scan(&e.ID, &e.StudentID, &e.StudentName, &e.ClassID, &e.ClassName,
		&e.AcademicYear, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListByClass retrieves all enrollments for a class in an academic year.
func (r *EnrollmentRepository) ListByClass(ctx context.Context, classID int, academicYear string) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.student_id, s.name, e.class_id,
		        CONCAT(c.grade_level, ' ', c.major_code, ' ', c.group_number),
		        e.academic_year, e.status, e.created_at, e.updated_at
		 FROM enrollments e
		 JOIN students s ON e.student_id = s.id
		 JOIN classes c ON e.class_id = c.id
		 WHERE e.class_id = $1 AND e.academic_year = $2
		 ORDER BY s.name ASC`, classID, academicYear,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.StudentName, &e.ClassID, &e.ClassName,
			&e.AcademicYear, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// IsStudentActiveInClass reports whether a student has an ACTIVE enrollment
// in the given class. Used to gate quiz and material access.
func (r *EnrollmentRepository) IsStudentActiveInClass(ctx context.Context, studentID, classID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM enrollments
		   WHERE student_id = $1 AND class_id = $2 AND status = $3
		 )`, studentID, classID, model.EnrollmentStatusActive,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new enrollment as ACTIVE.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, class_id, academic_year, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		e.StudentID, e.ClassID, e.AcademicYear, model.EnrollmentStatusActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update changes an enrollment's class and status.
func (r *EnrollmentRepository) Update(ctx context.Context, e *model.Enrollment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET class_id = $1, status = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		e.ClassID, e.Status, e.ID,
	)
	return err
}

// Delete removes an enrollment by its ID.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	return err
}

// ─── Teaching assignments ───────────────────────────────────────────

// ListTeachingAssignments retrieves teaching assignments, optionally
// filtered by teacher.
func (r *EnrollmentRepository) ListTeachingAssignments(ctx context.Context, teacherID *int) ([]model.TeachingAssignment, error) {
	query := `SELECT ta.id, ta.teacher_id, u.name, ta.class_id,
	                 CONCAT(c.grade_level, ' ', c.major_code, ' ', c.group_number),
	                 ta.subject_id, sub.name, ta.created_at
	          FROM teaching_assignments ta
	          JOIN users u ON ta.teacher_id = u.id
	          JOIN classes c ON ta.class_id = c.id
	          JOIN subjects sub ON ta.subject_id = sub.id`
	var args []interface{}
	if teacherID != nil {
		query += ` WHERE ta.teacher_id = $1`
		args = append(args, *teacherID)
	}
	query += ` ORDER BY u.name, sub.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.TeachingAssignment
	for rows.Next() {
		var ta model.TeachingAssignment
		if err := rows.Scan(&ta.ID, &ta.TeacherID, &ta.TeacherName, &ta.ClassID, &ta.ClassName,
			&ta.SubjectID, &ta.SubjectName, &ta.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, ta)
	}
	return assignments, rows.Err()
}

// TeacherTeaches reports whether a teacher is assigned to the given
// class+subject pair.
func (r *EnrollmentRepository) TeacherTeaches(ctx context.Context, teacherID, classID, subjectID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM teaching_assignments
		   WHERE teacher_id = $1 AND class_id = $2 AND subject_id = $3
		 )`, teacherID, classID, subjectID,
	).Scan(&exists)
	return exists, err
}

// CreateTeachingAssignment inserts a new teaching assignment.
func (r *EnrollmentRepository) CreateTeachingAssignment(ctx context.Context, ta *model.TeachingAssignment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO teaching_assignments (teacher_id, class_id, subject_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		ta.TeacherID, ta.ClassID, ta.SubjectID,
	).Scan(&ta.ID, &ta.CreatedAt)
}

// DeleteTeachingAssignment removes a teaching assignment by its ID.
func (r *EnrollmentRepository) DeleteTeachingAssignment(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teaching_assignments WHERE id = $1`, id)
	return err
}
