package service

import (
	"context"
	"errors"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// ClassService handles class business logic.
type ClassService struct {
	classRepo *repository.ClassRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// List retrieves all classes.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classRepo.List(ctx)
}

// Create creates a new class from the request payload.
func (s *ClassService) Create(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	class := &model.Class{
		GradeLevel:        req.GradeLevel,
		MajorCode:         req.MajorCode,
		GroupNumber:       req.GroupNumber,
		HomeroomTeacherID: req.HomeroomTeacherID,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, id int, req *model.CreateClassRequest) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("class not found")
	}

	class.GradeLevel = req.GradeLevel
	class.MajorCode = req.MajorCode
	class.GroupNumber = req.GroupNumber
	class.HomeroomTeacherID = req.HomeroomTeacherID

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Delete removes a class. Foreign keys on students and enrollments block
// deletion of a class that still has members; the handler maps that error.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	return s.classRepo.Delete(ctx, id)
}
