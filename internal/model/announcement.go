package model

import "time"

// AnnouncementAudience enumerates who an announcement targets.
type AnnouncementAudience string

const (
	AudienceAll   AnnouncementAudience = "ALL"
	AudienceClass AnnouncementAudience = "CLASS"
)

// Announcement is a school-wide or class-scoped notice with an optional
// publish window.
type Announcement struct {
	ID        int                  `json:"id"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	Audience  AnnouncementAudience `json:"audience"`
	ClassID   *int                 `json:"class_id,omitempty"`
	AuthorID  int                  `json:"author_id"`
	StartsAt  *time.Time           `json:"starts_at,omitempty"`
	EndsAt    *time.Time           `json:"ends_at,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ActiveAt reports whether the announcement is visible at the given time.
func (a *Announcement) ActiveAt(now time.Time) bool {
	if a.StartsAt != nil && now.Before(*a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && now.After(*a.EndsAt) {
		return false
	}
	return true
}

// CreateAnnouncementRequest is the payload for creating an announcement.
type CreateAnnouncementRequest struct {
	Title    string               `json:"title" binding:"required,min=3,max=255"`
	Body     string               `json:"body" binding:"required,min=1,max=20000"`
	Audience AnnouncementAudience `json:"audience" binding:"required,oneof=ALL CLASS"`
	ClassID  *int                 `json:"class_id" binding:"omitempty"`
	StartsAt *time.Time           `json:"starts_at" binding:"omitempty"`
	EndsAt   *time.Time           `json:"ends_at" binding:"omitempty,gtfield=StartsAt"`
}

// UpdateAnnouncementRequest is the payload for updating an announcement.
type UpdateAnnouncementRequest struct {
	Title    string     `json:"title" binding:"required,min=3,max=255"`
	Body     string     `json:"body" binding:"required,min=1,max=20000"`
	StartsAt *time.Time `json:"starts_at" binding:"omitempty"`
	EndsAt   *time.Time `json:"ends_at" binding:"omitempty,gtfield=StartsAt"`
}
