package model

import "time"

// Major represents a vocational field of study (jurusan), e.g. RPL, TKJ.
type Major struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	LongName  string    `json:"long_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMajorRequest doubles as the update payload.
type CreateMajorRequest struct {
	Code     string `json:"code" binding:"required,min=2,max=10"`
	LongName string `json:"long_name" binding:"required,min=3,max=100"`
}
