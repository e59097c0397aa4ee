package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_015"
)

// Short aliases used pervasively at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeUnauthorized = ErrCodeUnauthorized
	CodeForbidden    = ErrCodeForbidden
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Note module error codes.
const (
	ErrCodeNoteNotFound      ErrorCode = "NOTE_001"
	ErrCodeNoteAlreadyExists ErrorCode = "NOTE_002"
	ErrCodeNoteEmpty         ErrorCode = "NOTE_003"
	ErrCodeNoteFetchFailed   ErrorCode = "NOTE_004"
	ErrCodeNoteStoreFailed   ErrorCode = "NOTE_005"
)

// Analysis module error codes.
const (
	ErrCodeAnalysisNotFound      ErrorCode = "ANL_001"
	ErrCodeAnalysisFailed        ErrorCode = "ANL_002"
	ErrCodeAnalysisStoreFailed   ErrorCode = "ANL_003"
	ErrCodeAnalysisCacheFailed   ErrorCode = "ANL_004"
	ErrCodeAnalysisPublishFailed ErrorCode = "ANL_005"
)

// Report module error codes.
const (
	ErrCodeReportRenderFailed ErrorCode = "RPT_001"
	ErrCodeReportNotFound     ErrorCode = "RPT_002"
)

// Domain-specific aliases.
const (
	CodeNoteNotFound     = ErrCodeNoteNotFound
	CodeAnalysisNotFound = ErrCodeAnalysisNotFound
	CodeDatabaseError    = ErrCodeDatabaseError
	CodeCacheError       = ErrCodeCacheError
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeNoteNotFound:      http.StatusNotFound,
	ErrCodeNoteAlreadyExists: http.StatusConflict,
	ErrCodeNoteEmpty:         http.StatusBadRequest,
	ErrCodeNoteFetchFailed:   http.StatusBadGateway,
	ErrCodeNoteStoreFailed:   http.StatusInternalServerError,

	ErrCodeAnalysisNotFound:      http.StatusNotFound,
	ErrCodeAnalysisFailed:        http.StatusInternalServerError,
	ErrCodeAnalysisStoreFailed:   http.StatusInternalServerError,
	ErrCodeAnalysisCacheFailed:   http.StatusInternalServerError,
	ErrCodeAnalysisPublishFailed: http.StatusInternalServerError,

	ErrCodeReportRenderFailed: http.StatusInternalServerError,
	ErrCodeReportNotFound:     http.StatusNotFound,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeNoteNotFound:      "discharge note not found",
	ErrCodeNoteAlreadyExists: "discharge note already exists",
	ErrCodeNoteEmpty:         "discharge note text is empty",
	ErrCodeNoteFetchFailed:   "failed to fetch discharge note",
	ErrCodeNoteStoreFailed:   "failed to store discharge note",

	ErrCodeAnalysisNotFound:      "analysis not found",
	ErrCodeAnalysisFailed:        "note analysis failed",
	ErrCodeAnalysisStoreFailed:   "failed to store analysis snapshot",
	ErrCodeAnalysisCacheFailed:   "failed to cache analysis result",
	ErrCodeAnalysisPublishFailed: "failed to publish analysis event",

	ErrCodeReportRenderFailed: "failed to render discharge report",
	ErrCodeReportNotFound:     "report not found",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
