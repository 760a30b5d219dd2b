package analysis

// RunAnalysisRequest represents the request to run an analysis for a client.
// ClientID is required when the client is not named in the path.
type RunAnalysisRequest struct {
	ClientID string `json:"client_id,omitempty" validate:"omitempty,uuid"`
	Context  string `json:"context,omitempty" validate:"omitempty,max=10000"`
}

// RerunRequest re-analyzes an existing record with pod leader feedback
type RerunRequest struct {
	Inaccuracies      string   `json:"inaccuracies,omitempty" validate:"omitempty,max=10000"`
	AdditionalContext string   `json:"additional_context,omitempty" validate:"omitempty,max=10000"`
	FocusAreas        []string `json:"focus_areas,omitempty" validate:"omitempty,dive,min=1"`
}

// AppendTranscriptsRequest attaches extra transcripts to an existing analysis
type AppendTranscriptsRequest struct {
	Transcripts []string `json:"transcripts" validate:"required,min=1,dive,min=1"`
}

// ChatMessage is one prior turn of a follow-up conversation
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest asks a follow-up question about an analysis
type ChatRequest struct {
	Question string        `json:"question" validate:"required,min=1,max=5000"`
	History  []ChatMessage `json:"history,omitempty" validate:"omitempty,dive"`
}
