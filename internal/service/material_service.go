package service

import (
	"context"
	"errors"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// ErrNotOwner is returned when a teacher touches content they did not
// create.
var ErrNotOwner = errors.New("only the owner can modify this resource")

// MaterialService handles learning material business logic.
type MaterialService struct {
	materialRepo *repository.MaterialRepository
	enrollment   *EnrollmentService
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(materialRepo *repository.MaterialRepository, enrollment *EnrollmentService) *MaterialService {
	return &MaterialService{materialRepo: materialRepo, enrollment: enrollment}
}

// GetByID retrieves a material.
func (s *MaterialService) GetByID(ctx context.Context, id int) (*model.Material, error) {
	return s.materialRepo.GetByID(ctx, id)
}

// ListForStudent retrieves materials visible to a student's class after
// verifying the enrollment.
func (s *MaterialService) ListForStudent(ctx context.Context, studentID, classID int, subjectID *int) ([]model.Material, error) {
	if err := s.enrollment.RequireStudentInClass(ctx, studentID, classID); err != nil {
		return nil, err
	}
	materials, err := s.materialRepo.ListByClass(ctx, classID, subjectID)
	if err != nil {
		return nil, err
	}
	if materials == nil {
		materials = []model.Material{}
	}
	return materials, nil
}

// ListForTeacher retrieves materials a teacher has uploaded.
func (s *MaterialService) ListForTeacher(ctx context.Context, teacherID int) ([]model.Material, error) {
	materials, err := s.materialRepo.ListByUploader(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if materials == nil {
		materials = []model.Material{}
	}
	return materials, nil
}

// Create publishes a material to a class after verifying the teacher is
// assigned to the class+subject.
func (s *MaterialService) Create(ctx context.Context, teacherID int, req *model.CreateMaterialRequest) (*model.Material, error) {
	if err := s.enrollment.RequireTeacherForClass(ctx, teacherID, req.ClassID, req.SubjectID); err != nil {
		return nil, err
	}

	material := &model.Material{
		Title:      req.Title,
		Content:    req.Content,
		FileURL:    req.FileURL,
		ClassID:    req.ClassID,
		SubjectID:  req.SubjectID,
		UploaderID: teacherID,
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// Update rewrites a material. Only the uploader may edit it.
func (s *MaterialService) Update(ctx context.Context, teacherID, id int, req *model.UpdateMaterialRequest) (*model.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material.UploaderID != teacherID {
		return nil, ErrNotOwner
	}

	material.Title = req.Title
	material.Content = req.Content
	material.FileURL = req.FileURL
	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// Delete removes a material. Only the uploader may delete it.
func (s *MaterialService) Delete(ctx context.Context, teacherID, id int) error {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material.UploaderID != teacherID {
		return ErrNotOwner
	}
	return s.materialRepo.Delete(ctx, id)
}
