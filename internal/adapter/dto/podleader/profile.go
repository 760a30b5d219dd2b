package podleader

import "time"

// UpdateProfileRequest updates the caller's pod leader profile
type UpdateProfileRequest struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Pod                *string `json:"pod,omitempty" validate:"omitempty,max=100"`
	PersonalitySummary *string `json:"personality_summary,omitempty" validate:"omitempty,max=10000"`
}

// ProfileResponse represents a pod leader profile
type ProfileResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Pod                string    `json:"pod,omitempty"`
	PersonalitySummary string    `json:"personality_summary,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}
