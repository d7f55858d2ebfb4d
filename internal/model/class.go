package model

import "time"

// Class represents a school class group (e.g. XI RPL 2).
type Class struct {
	ID                int       `json:"id"`
	GradeLevel        string    `json:"grade_level"`
	MajorCode         string    `json:"major_code"`
	GroupNumber       int       `json:"group_number"`
	HomeroomTeacherID *int      `json:"homeroom_teacher_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	GradeLevel        string `json:"grade_level" binding:"required,oneof=X XI XII XIII"`
	MajorCode         string `json:"major_code" binding:"required,min=1,max=10"`
	GroupNumber       int    `json:"group_number" binding:"required,min=1"`
	HomeroomTeacherID *int   `json:"homeroom_teacher_id" binding:"omitempty"`
}
