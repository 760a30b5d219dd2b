package client

// CreateClientRequest represents the request to create a client profile
type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Pod          string `json:"pod,omitempty" validate:"omitempty,max=100"`
	MonthlySpend string `json:"monthly_spend,omitempty" validate:"omitempty,max=100"`
	Duration     string `json:"duration,omitempty" validate:"omitempty,max=100"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateClientRequest represents the request to update a client profile
type UpdateClientRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Pod          *string `json:"pod,omitempty" validate:"omitempty,max=100"`
	MonthlySpend *string `json:"monthly_spend,omitempty" validate:"omitempty,max=100"`
	Duration     *string `json:"duration,omitempty" validate:"omitempty,max=100"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdateMappingRequest replaces the client's meeting-matching rules
type UpdateMappingRequest struct {
	ParticipantEmails []string `json:"participant_emails" validate:"omitempty,dive,email"`
	TitlePattern      string   `json:"title_pattern,omitempty" validate:"omitempty,max=500"`
	FathomMeetingIDs  []string `json:"fathom_meeting_ids" validate:"omitempty,dive,min=1"`
	AutoDetect        bool     `json:"auto_detect"`
}

// UpdateNotificationPrefsRequest replaces the client's alert delivery settings
type UpdateNotificationPrefsRequest struct {
	PodLeaderEmail        string `json:"pod_leader_email,omitempty" validate:"omitempty,email"`
	SlackWebhookURL       string `json:"slack_webhook_url,omitempty" validate:"omitempty,url"`
	NotifyOnNewTranscript bool   `json:"notify_on_new_transcript"`
	NotifyOnAutoAnalysis  bool   `json:"notify_on_auto_analysis"`
}

// SetAutoAnalysisRequest toggles automatic analysis for the client
type SetAutoAnalysisRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
