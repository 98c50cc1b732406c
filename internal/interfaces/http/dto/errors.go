package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodePrecondition is used when a generation precondition is not met
	ErrCodePrecondition = "ERR_PRECONDITION"
)

// Upstream service error codes
const (
	// ErrCodeCreditsExhausted is used when the estimate service rejects for lack of credits
	ErrCodeCreditsExhausted = "ERR_CREDITS_EXHAUSTED"
	// ErrCodeUpstreamRejected is used when the estimate service rejects the request
	ErrCodeUpstreamRejected = "ERR_UPSTREAM_REJECTED"
	// ErrCodeUpstreamUnavailable is used when the estimate service cannot be reached
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	// ErrCodeNotConfigured is used when the estimate service API key is missing
	ErrCodeNotConfigured = "ERR_NOT_CONFIGURED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusConflict,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,
	ErrCodePrecondition: http.StatusUnprocessableEntity,

	ErrCodeCreditsExhausted:    http.StatusPaymentRequired,
	ErrCodeUpstreamRejected:    http.StatusBadGateway,
	ErrCodeUpstreamUnavailable: http.StatusServiceUnavailable,
	ErrCodeNotConfigured:       http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":         ErrCodeNotFound,
	"SESSION_NOT_DRAFT": ErrCodeInvalidState,
	"INVALID_STATE":     ErrCodeInvalidState,
	"ALREADY_CANCELLED": ErrCodeInvalidState,
	"CUSTOMER_REQUIRED": ErrCodePrecondition,
	"EMPTY_CONTEXT":     ErrCodePrecondition,
	"NO_PRODUCTS":       ErrCodePrecondition,
	"INVOICE_CANCELLED": ErrCodeBusinessRule,
	"ORDER_LOCKED":      ErrCodeInvalidState,
	"INVOICE_LOCKED":    ErrCodeInvalidState,
	"EMPTY_ORDER":       ErrCodeBusinessRule,
	"EMPTY_INVOICE":     ErrCodeBusinessRule,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unmapped codes fall back to the generic business rule code so the
// status is still a sensible 4xx.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if _, known := ErrorCodeHTTPStatus[code]; known {
		return code
	}
	return ErrCodeBusinessRule
}
