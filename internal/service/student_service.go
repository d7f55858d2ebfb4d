package service

import (
	"context"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/response"
)

// StudentService manages student accounts on the staff side and backs
// student login lookups.
type StudentService struct {
	studentRepo *repository.StudentRepository
	auth        *AuthService
}

func NewStudentService(studentRepo *repository.StudentRepository, auth *AuthService) *StudentService {
	return &StudentService{studentRepo: studentRepo, auth: auth}
}

func (s *StudentService) GetByNISN(ctx context.Context, nisn string) (*model.Student, error) {
	return s.studentRepo.GetByNISN(ctx, nisn)
}

func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents returns one page of students, optionally filtered by class.
// Page size is clamped to keep a curious admin from pulling the whole
// school in one request.
func (s *StudentService) ListStudents(ctx context.Context, classID *int, page, perPage int) ([]model.Student, *response.Pagination, error) {
	page = max(page, 1)
	switch {
	case perPage < 1:
		perPage = 10
	case perPage > 100:
		perPage = 100
	}

	students, total, err := s.studentRepo.ListPaginated(ctx, classID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}

	return students, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Create inserts a new student. The PasswordHash field carries the
// plaintext password on the way in and is replaced with its hash.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	hashed, err := s.auth.HashPassword(student.PasswordHash)
	if err != nil {
		return err
	}
	student.PasswordHash = hashed
	return s.studentRepo.Create(ctx, student)
}

// Update modifies a student's details, changing the password only when
// requested.
func (s *StudentService) Update(ctx context.Context, student *model.Student, updatePassword bool) error {
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return err
	}

	if updatePassword && student.PasswordHash != "" {
		hashed, err := s.auth.HashPassword(student.PasswordHash)
		if err != nil {
			return err
		}
		return s.studentRepo.UpdatePassword(ctx, student.ID, hashed)
	}
	return nil
}

// Delete removes a student and their login session.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auth.ResetStudentSession(ctx, id)
}
