package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Webhook Errors

func ErrInvalidWebhookSignature() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_WEBHOOK_INVALID_SIGNATURE,
		Message:  "Webhook signature verification failed",
	}
}

func ErrIngestFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INGEST_FAILED,
		Message:  "Failed to ingest meeting transcript",
	}
}

// Analysis Errors

func ErrAnalyzerNotConfigured() AppError {
	return AppError{
		HTTPCode: http.StatusPreconditionFailed,
		Code:     ErrorCode_ANALYZER_NOT_CONFIGURED,
		Message:  "Analyzer API is not configured",
	}
}

func ErrAnalysisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_ANALYSIS_FAILED,
		Message:  "Analysis failed",
	}
}

func ErrAnalysisNotFound(analysisID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ANALYSIS_NOT_FOUND,
		Message:  "Analysis not found",
	}.WithDetail("analysis_id", analysisID)
}

func ErrQueueNotReady(clientID string) AppError {
	return AppError{
		HTTPCode: http.StatusPreconditionFailed,
		Code:     ErrorCode_QUEUE_NOT_READY,
		Message:  "Client does not have three transcripts queued",
	}.WithDetail("client_id", clientID)
}

// Database Errors

func ErrDBQueryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}
}

func ErrDBWriteFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_WRITE_FAILED,
		Message:  "Database write failed",
	}
}
