package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalClasses, totalQuizzes, totalAssignments int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM quizzes),
			(SELECT COUNT(*) FROM assignments)`,
	).Scan(&totalStudents, &totalClasses, &totalQuizzes, &totalAssignments)
	return
}

// GetQuizStatusCounts retrieves the distribution of quizzes by status.
func (r *DashboardRepository) GetQuizStatusCounts(ctx context.Context) (map[model.QuizStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM quizzes GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.QuizStatus]int)
	for rows.Next() {
		var status model.QuizStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// DashboardUpcomingQuiz represents minimal data for upcoming scheduled quizzes.
type DashboardUpcomingQuiz struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	ScheduledStart   *time.Time `json:"scheduled_start"`
	TimeLimitMinutes *int       `json:"time_limit_minutes"`
}

// GetUpcomingQuizzes retrieves the next N scheduled quizzes that are PUBLISHED.
func (r *DashboardRepository) GetUpcomingQuizzes(ctx context.Context, limit int) ([]DashboardUpcomingQuiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, scheduled_start, time_limit_minutes
		 FROM quizzes
		 WHERE status = $1 AND scheduled_start > NOW()
		 ORDER BY scheduled_start ASC LIMIT $2`,
		model.QuizStatusPublished, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []DashboardUpcomingQuiz
	for rows.Next() {
		var q DashboardUpcomingQuiz
		if err := rows.Scan(&q.ID, &q.Title, &q.ScheduledStart, &q.TimeLimitMinutes); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	if quizzes == nil {
		quizzes = []DashboardUpcomingQuiz{}
	}
	return quizzes, rows.Err()
}

// DashboardRecentQuizResult aggregates attempt outcomes for recently
// closed quizzes.
type DashboardRecentQuizResult struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	EndDateTime      *time.Time `json:"end_date_time"`
	ParticipantCount int        `json:"participant_count"`
	AverageScore     *float64   `json:"average_score"`
}

// GetRecentQuizResults retrieves the last N closed or archived quizzes
// with attempt stats.
func (r *DashboardRepository) GetRecentQuizResults(ctx context.Context, limit int) ([]DashboardRecentQuizResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.title,
		        COALESCE(q.scheduled_end, q.updated_at) AS end_time,
		        COUNT(a.id) AS participant_count,
		        AVG(a.percentage) AS average_score
		 FROM quizzes q
		 LEFT JOIN attempts a ON q.id = a.quiz_id
		 WHERE q.status IN ($1, $2)
		 GROUP BY q.id, q.title, end_time
		 ORDER BY end_time DESC
		 LIMIT $3`,
		model.QuizStatusClosed, model.QuizStatusArchived, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DashboardRecentQuizResult
	for rows.Next() {
		var res DashboardRecentQuizResult
		if err := rows.Scan(&res.ID, &res.Title, &res.EndDateTime, &res.ParticipantCount, &res.AverageScore); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if results == nil {
		results = []DashboardRecentQuizResult{}
	}
	return results, rows.Err()
}

// GetTeacherSummary retrieves per-teacher metrics for the teacher
// dashboard view.
func (r *DashboardRepository) GetTeacherSummary(ctx context.Context, teacherID int) (classes, quizzes, assignments, pendingSubmissions int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(DISTINCT class_id) FROM teaching_assignments WHERE teacher_id = $1),
			(SELECT COUNT(*) FROM quizzes WHERE author_id = $1),
			(SELECT COUNT(*) FROM assignments WHERE author_id = $1),
			(SELECT COUNT(*) FROM submissions s
			 JOIN assignments a ON s.assignment_id = a.id
			 WHERE a.author_id = $1 AND s.graded_at IS NULL)`,
		teacherID,
	).Scan(&classes, &quizzes, &assignments, &pendingSubmissions)
	return
}
