package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// ClientResponse represents the API response for a client profile
type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Pod          string    `json:"pod,omitempty"`
	MonthlySpend string    `json:"monthly_spend,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromEntity converts a client entity to its response shape
func FromEntity(c *entities.ClientProfile) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Pod:          c.Pod,
		MonthlySpend: c.MonthlySpend,
		Duration:     c.Duration,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// QueueEntryResponse describes one queued transcript without its text
type QueueEntryResponse struct {
	FathomMeetingID string    `json:"fathom_meeting_id"`
	MeetingTitle    string    `json:"meeting_title"`
	MeetingDate     time.Time `json:"meeting_date"`
	AddedAt         time.Time `json:"added_at"`
	Sequence        string    `json:"sequence"`
}

// QueueStatusResponse represents the client's transcript window state
type QueueStatusResponse struct {
	ClientID            uuid.UUID            `json:"client_id"`
	WindowSize          int                  `json:"window_size"`
	Ready               bool                 `json:"ready"`
	AutoAnalysisEnabled bool                 `json:"auto_analysis_enabled"`
	LastProcessed       *time.Time           `json:"last_processed,omitempty"`
	Entries             []QueueEntryResponse `json:"entries"`
}

// QueueFromEntity converts a transcript queue to its response shape.
// Transcript bodies are deliberately excluded.
func QueueFromEntity(q *entities.ClientTranscriptQueue) QueueStatusResponse {
	resp := QueueStatusResponse{
		ClientID:            q.ClientID,
		WindowSize:          len(q.Transcripts),
		Ready:               q.IsReady(),
		AutoAnalysisEnabled: q.AutoAnalysisEnabled,
		LastProcessed:       q.LastProcessed,
		Entries:             make([]QueueEntryResponse, 0, len(q.Transcripts)),
	}
	for _, t := range q.Transcripts {
		resp.Entries = append(resp.Entries, QueueEntryResponse{
			FathomMeetingID: t.FathomMeetingID,
			MeetingTitle:    t.MeetingTitle,
			MeetingDate:     t.MeetingDate,
			AddedAt:         t.AddedAt,
			Sequence:        t.Sequence,
		})
	}
	return resp
}

// MappingResponse represents the client's meeting-matching rules
type MappingResponse struct {
	ClientID          uuid.UUID `json:"client_id"`
	ParticipantEmails []string  `json:"participant_emails"`
	TitlePattern      string    `json:"title_pattern,omitempty"`
	FathomMeetingIDs  []string  `json:"fathom_meeting_ids"`
	AutoDetect        bool      `json:"auto_detect"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NotificationPrefsResponse represents the client's alert delivery settings
type NotificationPrefsResponse struct {
	ClientID              uuid.UUID `json:"client_id"`
	PodLeaderEmail        string    `json:"pod_leader_email,omitempty"`
	SlackWebhookURL       string    `json:"slack_webhook_url,omitempty"`
	NotifyOnNewTranscript bool      `json:"notify_on_new_transcript"`
	NotifyOnAutoAnalysis  bool      `json:"notify_on_auto_analysis"`
}
