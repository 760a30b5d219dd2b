package entities

import (
	"time"

	"github.com/google/uuid"
)

// Bounded-list caps for the rolling relationship memory
const (
	MaxKeyMoments          = 15
	MaxTrajectoryPoints    = 50
	MaxStylePoints         = 20
	MaxNewMomentsPerUpdate = 3
)

// KeyMoment is a retained significant quote from a past analysis
type KeyMoment struct {
	Date         string `json:"date"`
	Quote        string `json:"quote"`
	Significance string `json:"significance"`
	Sentiment    string `json:"sentiment"` // positive, negative, neutral
}

// TrajectoryPoint is one point in the trajectory-over-time series
type TrajectoryPoint struct {
	Date       string `json:"date"`
	Trajectory string `json:"trajectory"`
	ChurnRisk  string `json:"churn_risk"`
	Confidence int    `json:"confidence"`
}

// StylePoint records a participant's communication style at one analysis
type StylePoint struct {
	Date  string `json:"date"`
	Style string `json:"style"`
}

// ParticipantProfile tracks one participant's style evolution, matched by name
type ParticipantProfile struct {
	Name         string       `json:"name"`
	CurrentStyle string       `json:"current_style"`
	StyleHistory []StylePoint `json:"style_history"`
	Notes        string       `json:"notes"`
}

// ClientRelationshipHistory is the compressed long-term memory for a client.
// The cumulative summary is regenerated on every update, never appended.
type ClientRelationshipHistory struct {
	ClientID              uuid.UUID            `json:"client_id" gorm:"type:uuid;primary_key"`
	CumulativeSummary     string               `json:"cumulative_summary" gorm:"type:text"`
	KeyMoments            []KeyMoment          `json:"key_moments" gorm:"type:jsonb;serializer:json"`
	TrajectoryHistory     []TrajectoryPoint    `json:"trajectory_history" gorm:"type:jsonb;serializer:json"`
	ParticipantProfiles   []ParticipantProfile `json:"participant_profiles" gorm:"type:jsonb;serializer:json"`
	TotalMeetingsAnalyzed int                  `json:"total_meetings_analyzed"`
	FirstAnalysisDate     time.Time            `json:"first_analysis_date"`
	LastAnalysisDate      time.Time            `json:"last_analysis_date"`
	UpdatedAt             time.Time            `json:"last_updated" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ClientRelationshipHistory
func (ClientRelationshipHistory) TableName() string {
	return "relationship_histories"
}

// RecentTrajectory returns up to the last n trajectory points, oldest first
func (h *ClientRelationshipHistory) RecentTrajectory(n int) []TrajectoryPoint {
	if len(h.TrajectoryHistory) <= n {
		return h.TrajectoryHistory
	}
	return h.TrajectoryHistory[len(h.TrajectoryHistory)-n:]
}
