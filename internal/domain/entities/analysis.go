package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TrajectoryAnalysis captures the direction of change across the three transcripts
type TrajectoryAnalysis struct {
	Engagement    string `json:"engagement"`     // Increasing, Stable, Declining
	MeetingLength string `json:"meeting_length"` // Shorter, Stable, Longer
	Energy        string `json:"energy"`         // Rising, Falling, Flat
	FutureTalk    string `json:"future_talk"`    // More, Less, Same
}

// SubtleSignals are the pattern lists the analyst extracts from language shifts
type SubtleSignals struct {
	LanguagePatterns []string `json:"language_patterns"`
	EnergyFlags      []string `json:"energy_flags"`
	TrustConcerns    []string `json:"trust_concerns"`
	FinancialAnxiety []string `json:"financial_anxiety"`
	PositiveSignals  []string `json:"positive_signals"`
}

// CriticalMoment is a retained quote with its surface and deep interpretations
type CriticalMoment struct {
	Quote       string `json:"quote"`
	SurfaceRead string `json:"surface_read"`
	DeepMeaning string `json:"deep_meaning"`
	Implication string `json:"implication"`
	Confidence  string `json:"confidence"`     // Low, Medium, High
	Type        string `json:"type,omitempty"` // trust, strategy, financial, communication
}

// BottomLine is the headline assessment
type BottomLine struct {
	Trajectory             string `json:"trajectory"`        // Strengthening, Stable, Declining, Critical
	ChurnRisk              string `json:"churn_risk"`        // Low, Medium, High, Immediate
	ClientConfidence       int    `json:"client_confidence"` // 1-10
	ConfidenceInAssessment string `json:"confidence_in_assessment"`
	WhatsReallyGoingOn     string `json:"whats_really_going_on"`
	LikelyDriverIfChurn    string `json:"likely_underlying_driver_if_churn"`
}

// ActionPlanItem is a recommended intervention for the account team
type ActionPlanItem struct {
	Action string `json:"action"`
	Why    string `json:"why"`
	How    string `json:"how"`
}

// MeetingActionItem is a task extracted from the most recent transcript
type MeetingActionItem struct {
	Item   string `json:"item"`
	Owner  string `json:"owner"`
	Status string `json:"status"` // pending, in-progress
	Notes  string `json:"notes"`
}

// CommunicationStyle describes a participant's manner and how it evolved
type CommunicationStyle struct {
	Participant string   `json:"participant"`
	Style       string   `json:"style"` // direct, passive, collaborative, defensive, disengaged
	Traits      []string `json:"traits"`
	Evolution   string   `json:"evolution"`
}

// SarcasmInstance is a detected sarcastic or passive-aggressive remark
type SarcasmInstance struct {
	Quote             string `json:"quote"`
	Source            string `json:"source"` // oldest, middle, recent
	Type              string `json:"type"`   // sarcasm, passive-aggressive, backhanded-compliment, dismissive
	UnderlyingMeaning string `json:"underlying_meaning"`
	Severity          string `json:"severity"` // mild, moderate, severe
}

// BlindSpots is personality-tailored commentary for the pod leader
type BlindSpots struct {
	Overview           string   `json:"overview"`
	SpecificBlindSpots []string `json:"specific_blind_spots"`
	WhatToWatchFor     []string `json:"what_to_watch_for"`
}

// AnalysisResult is the structured output of one analyzer run.
// Opaque to the queue and history logic; immutable once produced.
type AnalysisResult struct {
	TrajectoryAnalysis  TrajectoryAnalysis   `json:"trajectory_analysis"`
	SubtleSignals       SubtleSignals        `json:"subtle_signals"`
	CriticalMoments     []CriticalMoment     `json:"critical_moments"`
	BottomLine          BottomLine           `json:"bottom_line"`
	ActionPlan          []ActionPlanItem     `json:"action_plan"`
	MeetingActionItems  []MeetingActionItem  `json:"meeting_action_items"`
	CommunicationStyles []CommunicationStyle `json:"communication_styles"`
	SarcasmInstances    []SarcasmInstance    `json:"sarcasm_instances"`
	BlindSpots          *BlindSpots          `json:"blind_spots_for_your_personality,omitempty"`
}

// AnalysisFeedback is pod-leader feedback attached to a re-run
type AnalysisFeedback struct {
	Inaccuracies      string   `json:"inaccuracies,omitempty"`
	AdditionalContext string   `json:"additional_context,omitempty"`
	FocusAreas        []string `json:"focus_areas,omitempty"`
}

// HistoricalContext is the compressed long-term memory passed into a run
type HistoricalContext struct {
	CumulativeSummary     string   `json:"cumulative_summary"`
	TotalPreviousMeetings int      `json:"total_previous_meetings"`
	TrajectoryTrend       string   `json:"trajectory_trend"`
	KeyHistoricalMoments  []string `json:"key_historical_moments"`
}

// ClientContext is the client background included in the analyzer prompt
type ClientContext struct {
	Name         string `json:"name"`
	MonthlySpend string `json:"monthly_spend"`
	Duration     string `json:"duration"`
	Notes        string `json:"notes"`
}

// TranscriptData is the full input bundle for one analyzer run
type TranscriptData struct {
	Oldest                string             `json:"oldest"`
	Middle                string             `json:"middle"`
	Recent                string             `json:"recent"`
	Context               string             `json:"context"`
	ClientProfile         *ClientContext     `json:"client_profile,omitempty"`
	AdditionalTranscripts []string           `json:"additional_transcripts,omitempty"`
	Feedback              *AnalysisFeedback  `json:"feedback,omitempty"`
	HistoricalContext     *HistoricalContext `json:"historical_context,omitempty"`
	PersonalitySummary    string             `json:"personality_summary,omitempty"`
}

// AnalysisRecord is one persisted analysis run for a client
type AnalysisRecord struct {
	ID             uuid.UUID                          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientID       uuid.UUID                          `json:"client_id" gorm:"type:uuid;not null;index"`
	OwnerID        string                             `json:"owner_id" gorm:"type:varchar(255)"`
	Date           time.Time                          `json:"date" gorm:"not null;index"`
	Result         datatypes.JSONType[AnalysisResult] `json:"result" gorm:"type:jsonb"`
	TranscriptData datatypes.JSONType[TranscriptData] `json:"transcript_data" gorm:"type:jsonb"`
	CreatedAt      time.Time                          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time                          `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for AnalysisRecord
func (AnalysisRecord) TableName() string {
	return "analyses"
}

// NewAnalysisRecord creates a new AnalysisRecord entity
func NewAnalysisRecord(clientID uuid.UUID, ownerID string, result AnalysisResult, data TranscriptData) *AnalysisRecord {
	return &AnalysisRecord{
		ID:             uuid.New(),
		ClientID:       clientID,
		OwnerID:        ownerID,
		Date:           time.Now(),
		Result:         datatypes.NewJSONType(result),
		TranscriptData: datatypes.NewJSONType(data),
	}
}

// Churn risk levels
const (
	ChurnRiskLow       = "Low"
	ChurnRiskMedium    = "Medium"
	ChurnRiskHigh      = "High"
	ChurnRiskImmediate = "Immediate"
)

// Trajectory labels
const (
	TrajectoryStrengthening = "Strengthening"
	TrajectoryStable        = "Stable"
	TrajectoryDeclining     = "Declining"
	TrajectoryCritical      = "Critical"
)
