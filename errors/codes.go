package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL            ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT    ErrorCode = 1001
	ErrorCode_NOT_FOUND           ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS      ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED   ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED     ErrorCode = 1005
	ErrorCode_FAILED_PRECONDITION ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD     ErrorCode = 1007

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Webhook / ingestion
	ErrorCode_WEBHOOK_INVALID_SIGNATURE ErrorCode = 3000
	ErrorCode_INGEST_FAILED             ErrorCode = 3001

	// Analysis
	ErrorCode_ANALYZER_NOT_CONFIGURED ErrorCode = 4000
	ErrorCode_ANALYSIS_FAILED         ErrorCode = 4001
	ErrorCode_ANALYSIS_NOT_FOUND      ErrorCode = 4002
	ErrorCode_QUEUE_NOT_READY         ErrorCode = 4003

	// Store
	ErrorCode_DB_QUERY_FAILED ErrorCode = 5000
	ErrorCode_DB_WRITE_FAILED ErrorCode = 5001
)

// String returns the code's wire name
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_ALREADY_EXISTS:
		return "ALREADY_EXISTS"
	case ErrorCode_PERMISSION_DENIED:
		return "PERMISSION_DENIED"
	case ErrorCode_UNAUTHENTICATED:
		return "UNAUTHENTICATED"
	case ErrorCode_FAILED_PRECONDITION:
		return "FAILED_PRECONDITION"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_AUTH_INVALID_TOKEN:
		return "AUTH_INVALID_TOKEN"
	case ErrorCode_AUTH_TOKEN_EXPIRED:
		return "AUTH_TOKEN_EXPIRED"
	case ErrorCode_WEBHOOK_INVALID_SIGNATURE:
		return "WEBHOOK_INVALID_SIGNATURE"
	case ErrorCode_INGEST_FAILED:
		return "INGEST_FAILED"
	case ErrorCode_ANALYZER_NOT_CONFIGURED:
		return "ANALYZER_NOT_CONFIGURED"
	case ErrorCode_ANALYSIS_FAILED:
		return "ANALYSIS_FAILED"
	case ErrorCode_ANALYSIS_NOT_FOUND:
		return "ANALYSIS_NOT_FOUND"
	case ErrorCode_QUEUE_NOT_READY:
		return "QUEUE_NOT_READY"
	case ErrorCode_DB_QUERY_FAILED:
		return "DB_QUERY_FAILED"
	case ErrorCode_DB_WRITE_FAILED:
		return "DB_WRITE_FAILED"
	default:
		return "UNKNOWN"
	}
}
