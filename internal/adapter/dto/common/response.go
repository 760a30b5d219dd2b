package common

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WebhookAck acknowledges a processed webhook event
type WebhookAck struct {
	Outcome             string `json:"outcome"`
	ClientID            string `json:"client_id,omitempty"`
	WindowSize          int    `json:"window_size,omitempty"`
	WindowReady         bool   `json:"window_ready"`
	AutoAnalysisStarted bool   `json:"auto_analysis_started"`
}
