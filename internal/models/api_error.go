package models

import "fmt"

// ErrorCode identifies an error class in API responses.
type ErrorCode string

// Codes the dashboard API can return.
const (
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeNotFound            ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed    ErrorCode = "method_not_allowed"

	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeInvalidFormat    ErrorCode = "invalid_format"

	ErrorCodeDuplicateResource   ErrorCode = "duplicate_resource"
	ErrorCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
)

// APIError is the JSON body of every failed request. StatusCode only selects the
// HTTP status and is not serialized; Details carries per-field messages on
// validation failures.
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	StatusCode int       `json:"-"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAPIError builds an APIError answered with statusCode.
func NewAPIError(code ErrorCode, message string, details any, statusCode int) APIError {
	return APIError{Code: code, Message: message, Details: details, StatusCode: statusCode}
}
