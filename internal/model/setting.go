package model

import "time"

// AppSetting is one row of school-wide configuration: school name,
// active academic year, timezone and whatever else admins store.
type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest carries a partial map; absent keys are untouched.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
