package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Portal error codes
const (
	// ErrCodePortalValidation is used when a payload fails portal validation before sending
	ErrCodePortalValidation = "ERR_PORTAL_VALIDATION"
	// ErrCodePortalRejected is used when a portal accepted the call but rejected the listing
	ErrCodePortalRejected = "ERR_PORTAL_REJECTED"
	// ErrCodePortalEmpty is used when a portal reported success but published nothing
	ErrCodePortalEmpty = "ERR_PORTAL_EMPTY_RESPONSE"
	// ErrCodePortalCredentials is used when portal credentials are missing or rejected
	ErrCodePortalCredentials = "ERR_PORTAL_CREDENTIALS"
	// ErrCodePortalUpstream is used when the portal HTTP call itself failed
	ErrCodePortalUpstream = "ERR_PORTAL_UPSTREAM"
	// ErrCodePortalNotPublished is used when syncing or removing a listing that was never published
	ErrCodePortalNotPublished = "ERR_PORTAL_NOT_PUBLISHED"
	// ErrCodePortalUnknown is used when the portal name is not registered
	ErrCodePortalUnknown = "ERR_PORTAL_UNKNOWN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Portal errors
	ErrCodePortalValidation:   http.StatusBadRequest,
	ErrCodePortalRejected:     http.StatusBadRequest,
	ErrCodePortalEmpty:        http.StatusUnprocessableEntity,
	ErrCodePortalCredentials:  http.StatusInternalServerError,
	ErrCodePortalUpstream:     http.StatusBadGateway,
	ErrCodePortalNotPublished: http.StatusConflict,
	ErrCodePortalUnknown:      http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps short domain error codes to standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeAlreadyExists,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_STATE":      ErrCodeInvalidState,
	"VALIDATION_ERROR":   ErrCodeValidation,
	"BAD_REQUEST":        ErrCodeBadRequest,
	"INTERNAL_ERROR":     ErrCodeInternal,
	"PORTAL_REJECTED":    ErrCodePortalRejected,
	"PORTAL_UNREACHABLE": ErrCodePortalUpstream,
	"CREDENTIAL_FAILURE": ErrCodePortalCredentials,
}

// NormalizeErrorCode converts a short domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
