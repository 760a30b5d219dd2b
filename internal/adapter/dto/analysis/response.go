package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

// AnalysisResponse represents the API response for one analysis record
type AnalysisResponse struct {
	ID        uuid.UUID               `json:"id"`
	ClientID  uuid.UUID               `json:"client_id"`
	Date      time.Time               `json:"date"`
	Result    entities.AnalysisResult `json:"result"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// FromEntity converts an analysis record to its response shape.
// Raw transcript data stays server side.
func FromEntity(r *entities.AnalysisRecord) AnalysisResponse {
	return AnalysisResponse{
		ID:        r.ID,
		ClientID:  r.ClientID,
		Date:      r.Date,
		Result:    r.Result.Data(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ListFromEntities converts a slice of analysis records
func ListFromEntities(records []*entities.AnalysisRecord) []AnalysisResponse {
	out := make([]AnalysisResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromEntity(r))
	}
	return out
}

// ChatResponse carries the follow-up answer
type ChatResponse struct {
	AnalysisID uuid.UUID `json:"analysis_id"`
	Answer     string    `json:"answer"`
}

// HistoryResponse represents the client's compressed relationship memory
type HistoryResponse struct {
	ClientID              uuid.UUID                     `json:"client_id"`
	CumulativeSummary     string                        `json:"cumulative_summary"`
	KeyMoments            []entities.KeyMoment          `json:"key_moments"`
	TrajectoryHistory     []entities.TrajectoryPoint    `json:"trajectory_history"`
	ParticipantProfiles   []entities.ParticipantProfile `json:"participant_profiles"`
	Trend                 string                        `json:"trend"`
	TotalMeetingsAnalyzed int                           `json:"total_meetings_analyzed"`
	FirstAnalysisDate     *time.Time                    `json:"first_analysis_date,omitempty"`
	LastAnalysisDate      *time.Time                    `json:"last_analysis_date,omitempty"`
	UpdatedAt             time.Time                     `json:"updated_at"`
}
