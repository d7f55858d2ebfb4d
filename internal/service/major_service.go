package service

import (
	"context"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// MajorService handles vocational major catalog business logic.
type MajorService struct {
	majorRepo *repository.MajorRepository
}

// NewMajorService creates a new MajorService.
func NewMajorService(majorRepo *repository.MajorRepository) *MajorService {
	return &MajorService{majorRepo: majorRepo}
}

// List retrieves all majors.
func (s *MajorService) List(ctx context.Context) ([]model.Major, error) {
	return s.majorRepo.List(ctx)
}

// Create inserts a new major. The unique index on code rejects
// duplicates.
func (s *MajorService) Create(ctx context.Context, req *model.CreateMajorRequest) (*model.Major, error) {
	major := &model.Major{Code: req.Code, LongName: req.LongName}
	if err := s.majorRepo.Create(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

// Update modifies a major.
func (s *MajorService) Update(ctx context.Context, id int, req *model.CreateMajorRequest) (*model.Major, error) {
	major := &model.Major{ID: id, Code: req.Code, LongName: req.LongName}
	if err := s.majorRepo.Update(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

// Delete removes a major from the catalog.
func (s *MajorService) Delete(ctx context.Context, id int) error {
	return s.majorRepo.Delete(ctx, id)
}
