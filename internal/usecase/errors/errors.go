package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Client errors
var (
	ErrClientNotFound = errors.New("client not found")
	ErrNotOwner       = errors.New("client belongs to another pod leader")
)

// Queue errors
var (
	ErrQueueNotReady   = errors.New("transcript queue is not ready for analysis")
	ErrQueueNotFound   = errors.New("no transcript queue exists for this client")
	ErrEmptyTranscript = errors.New("transcript text is empty")
)

// Analysis errors
var (
	ErrAnalysisNotFound      = errors.New("analysis not found")
	ErrAnalyzerNotConfigured = errors.New("analysis model is not configured")
	ErrAnalysisFailed        = errors.New("analysis failed")
	ErrMalformedAnalysis     = errors.New("analysis output is malformed")
)

// Ingest errors
var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrNoMatchingClient = errors.New("no client mapping matched the meeting")
	ErrNoTranscript     = errors.New("meeting carries no transcript")
)
