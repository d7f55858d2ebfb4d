package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smklab/lms-backend/internal/model"
)

// AnnouncementRepository handles announcement data access.
type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

// GetByID retrieves an announcement by its ID.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int) (*model.Announcement, error) {
	a := &model.Announcement{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, body, audience, class_id, author_id,
		        starts_at, ends_at, created_at, updated_at
		 FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.Audience, &a.ClassID, &a.AuthorID,
		&a.StartsAt, &a.EndsAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAll retrieves every announcement, newest first. Staff view.
func (r *AnnouncementRepository) ListAll(ctx context.Context) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, audience, class_id, author_id,
		        starts_at, ends_at, created_at, updated_at
		 FROM announcements
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnnouncements(rows)
}

// ListActiveForClass retrieves announcements visible to a class right
// now: school-wide ones plus those targeted at the class, both within
// their publish window.
func (r *AnnouncementRepository) ListActiveForClass(ctx context.Context, classID int, now time.Time) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, audience, class_id, author_id,
		        starts_at, ends_at, created_at, updated_at
		 FROM announcements
		 WHERE (audience = $1 OR (audience = $2 AND class_id = $3))
		   AND (starts_at IS NULL OR starts_at <= $4)
		   AND (ends_at IS NULL OR ends_at >= $4)
		 ORDER BY created_at DESC`,
		model.AudienceAll, model.AudienceClass, classID, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnnouncements(rows)
}

func collectAnnouncements(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]model.Announcement, error) {
	var announcements []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Audience, &a.ClassID, &a.AuthorID,
			&a.StartsAt, &a.EndsAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO announcements (title, body, audience, class_id, author_id, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		a.Title, a.Body, a.Audience, a.ClassID, a.AuthorID, a.StartsAt, a.EndsAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// Update rewrites an announcement's content and publish window.
func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE announcements
		 SET title = $1, body = $2, starts_at = $3, ends_at = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		a.Title, a.Body, a.StartsAt, a.EndsAt, a.ID,
	)
	return err
}

// Delete removes an announcement by its ID.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	return err
}
