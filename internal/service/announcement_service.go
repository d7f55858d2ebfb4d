package service

import (
	"context"
	"errors"
	"time"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// ErrClassRequired is returned when a class-scoped announcement is
// created without a class.
var ErrClassRequired = errors.New("class_id is required for CLASS audience")

// AnnouncementService handles announcement business logic.
type AnnouncementService struct {
	announcementRepo *repository.AnnouncementRepository
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(announcementRepo *repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo}
}

// ListAll retrieves every announcement for staff management views.
func (s *AnnouncementService) ListAll(ctx context.Context) ([]model.Announcement, error) {
	announcements, err := s.announcementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	return announcements, nil
}

// ListForStudent retrieves the announcements currently visible to a
// student's class.
func (s *AnnouncementService) ListForStudent(ctx context.Context, classID int) ([]model.Announcement, error) {
	announcements, err := s.announcementRepo.ListActiveForClass(ctx, classID, time.Now())
	if err != nil {
		return nil, err
	}
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	return announcements, nil
}

// Create publishes an announcement.
func (s *AnnouncementService) Create(ctx context.Context, authorID int, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	if req.Audience == model.AudienceClass && req.ClassID == nil {
		return nil, ErrClassRequired
	}

	announcement := &model.Announcement{
		Title:    req.Title,
		Body:     req.Body,
		Audience: req.Audience,
		AuthorID: authorID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	if req.Audience == model.AudienceClass {
		announcement.ClassID = req.ClassID
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Update rewrites an announcement's content and publish window.
func (s *AnnouncementService) Update(ctx context.Context, id int, req *model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	announcement.Title = req.Title
	announcement.Body = req.Body
	announcement.StartsAt = req.StartsAt
	announcement.EndsAt = req.EndsAt
	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id int) error {
	return s.announcementRepo.Delete(ctx, id)
}
