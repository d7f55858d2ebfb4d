package model

import "time"

// Material represents a learning material shared with a class for a subject.
type Material struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	FileURL    string    `json:"file_url,omitempty"`
	ClassID    int       `json:"class_id"`
	SubjectID  int       `json:"subject_id"`
	UploaderID int       `json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateMaterialRequest is the payload for creating a material.
// FileURL comes from a prior media upload call.
type CreateMaterialRequest struct {
	Title     string `json:"title" binding:"required,min=3,max=255"`
	Content   string `json:"content" binding:"omitempty,max=20000"`
	FileURL   string `json:"file_url" binding:"omitempty,max=500"`
	ClassID   int    `json:"class_id" binding:"required"`
	SubjectID int    `json:"subject_id" binding:"required"`
}

// UpdateMaterialRequest is the payload for updating a material.
type UpdateMaterialRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=255"`
	Content string `json:"content" binding:"omitempty,max=20000"`
	FileURL string `json:"file_url" binding:"omitempty,max=500"`
}
