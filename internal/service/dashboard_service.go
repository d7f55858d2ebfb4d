package service

import (
	"context"

	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
)

// AdminDashboard consolidates all metrics for the admin dashboard.
type AdminDashboard struct {
	TotalStudents    int                                    `json:"total_students"`
	TotalClasses     int                                    `json:"total_classes"`
	TotalQuizzes     int                                    `json:"total_quizzes"`
	TotalAssignments int                                    `json:"total_assignments"`
	QuizStatusCounts map[model.QuizStatus]int               `json:"quiz_status_counts"`
	UpcomingQuizzes  []repository.DashboardUpcomingQuiz     `json:"upcoming_quizzes"`
	RecentResults    []repository.DashboardRecentQuizResult `json:"recent_results"`
}

// TeacherDashboard consolidates per-teacher metrics.
type TeacherDashboard struct {
	ClassCount         int `json:"class_count"`
	QuizCount          int `json:"quiz_count"`
	AssignmentCount    int `json:"assignment_count"`
	PendingSubmissions int `json:"pending_submissions"`
}

// DashboardService handles dashboard business logic.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetAdminDashboard fetches all school-wide dashboard metrics.
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	students, classes, quizzes, assignments, err := s.repo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.repo.GetQuizStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.repo.GetUpcomingQuizzes(ctx, 5)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.GetRecentQuizResults(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalStudents:    students,
		TotalClasses:     classes,
		TotalQuizzes:     quizzes,
		TotalAssignments: assignments,
		QuizStatusCounts: statusCounts,
		UpcomingQuizzes:  upcoming,
		RecentResults:    recent,
	}, nil
}

// GetTeacherDashboard fetches one teacher's workload metrics.
func (s *DashboardService) GetTeacherDashboard(ctx context.Context, teacherID int) (*TeacherDashboard, error) {
	classes, quizzes, assignments, pending, err := s.repo.GetTeacherSummary(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return &TeacherDashboard{
		ClassCount:         classes,
		QuizCount:          quizzes,
		AssignmentCount:    assignments,
		PendingSubmissions: pending,
	}, nil
}
