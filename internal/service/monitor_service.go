package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// MonitorService orchestrates live quiz monitoring business logic.
type MonitorService struct {
	monitorRepo *repository.MonitorRepository
}

// NewMonitorService creates a new MonitorService.
func NewMonitorService(monitorRepo *repository.MonitorRepository) *MonitorService {
	return &MonitorService{monitorRepo: monitorRepo}
}

// ProgressSnapshot holds per-student answered counts and the attempt
// status distribution for one quiz.
type ProgressSnapshot struct {
	AnsweredCounts map[int]int64             `json:"answered_counts"`
	StatusCounts   map[model.AttemptStatus]int `json:"status_counts"`
}

// GetProgress returns the monitoring snapshot. The two fetches are
// independent, so they run concurrently.
func (s *MonitorService) GetProgress(ctx context.Context, quizID uuid.UUID) (*ProgressSnapshot, error) {
	var (
		answered    map[int]int64
		statuses    map[model.AttemptStatus]int
		answeredErr error
		statusErr   error
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		answered, answeredErr = s.monitorRepo.GetAnsweredCounts(ctx, quizID)
	}()
	go func() {
		defer wg.Done()
		statuses, statusErr = s.monitorRepo.GetStatusCounts(ctx, quizID)
	}()
	wg.Wait()

	if answeredErr != nil {
		return nil, answeredErr
	}
	if statusErr != nil {
		return nil, statusErr
	}

	snapshot := &ProgressSnapshot{
		AnsweredCounts: answered,
		StatusCounts:   statuses,
	}
	if snapshot.AnsweredCounts == nil {
		snapshot.AnsweredCounts = map[int]int64{}
	}
	if snapshot.StatusCounts == nil {
		snapshot.StatusCounts = map[model.AttemptStatus]int{}
	}
	return snapshot, nil
}

// GetInProgressStudents returns the IDs of students still working.
func (s *MonitorService) GetInProgressStudents(ctx context.Context, quizID uuid.UUID) ([]int, error) {
	return s.monitorRepo.GetInProgressStudentIDs(ctx, quizID)
}
