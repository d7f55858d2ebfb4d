package model

import "time"

// Gender uses the Indonesian forms, matching how report cards print it.
type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

// Student is a learner account. NISN (national student number) is the
// login username; NIS is the school-local number shown on documents.
type Student struct {
	ID           int       `json:"id"`
	NIS          string    `json:"nis"`
	NISN         string    `json:"nisn"`
	Name         string    `json:"name"`
	Gender       Gender    `json:"gender"`
	Email        string    `json:"email,omitempty"`
	GuardianName string    `json:"guardian_name,omitempty"`
	PasswordHash string    `json:"-"`
	ClassID      int       `json:"class_id"`
	ClassName    string    `json:"class_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StudentLoginRequest struct {
	NISN     string `json:"nisn" binding:"required,min=4,max=20"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

type StudentLoginResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}

type CreateStudentRequest struct {
	NIS          string `json:"nis" binding:"required,min=4,max=20"`
	NISN         string `json:"nisn" binding:"required,min=4,max=20"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Gender       Gender `json:"gender" binding:"required,oneof=Laki-laki Perempuan"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	GuardianName string `json:"guardian_name" binding:"omitempty,max=100"`
	Password     string `json:"password" binding:"required,min=6,max=128"`
	ClassID      int    `json:"class_id" binding:"required"`
}

// UpdateStudentRequest mirrors CreateStudentRequest except the password,
// which is optional: empty keeps the current one.
type UpdateStudentRequest struct {
	NIS          string `json:"nis" binding:"required,min=4,max=20"`
	NISN         string `json:"nisn" binding:"required,min=4,max=20"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Gender       Gender `json:"gender" binding:"required,oneof=Laki-laki Perempuan"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	GuardianName string `json:"guardian_name" binding:"omitempty,max=100"`
	Password     string `json:"password" binding:"omitempty,min=6,max=128"`
	ClassID      int    `json:"class_id" binding:"required"`
}
