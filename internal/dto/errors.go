package dto

import "fmt"

// Per-ticker outcome codes. These degrade to a result field so one bad
// ticker never blocks the rest of the universe.
const (
	ErrCodeNoBars           = "no_bars"
	ErrCodeInsufficientBars = "insufficient_bars"
	ErrCodeInvalidAsOf      = "invalid_asof"
	ErrCodeAsOfOutOfRange   = "asof_out_of_range"
	ErrCodeNoForwardBars    = "no_forward_bars"
	ErrCodeDataUnavailable  = "data_unavailable"
)

// Request-level codes. These abort the whole request.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeInternal       = "internal_error"
)

// ApiError is a request-level failure with an HTTP status.
type ApiError struct {
	Status  int         `json:"-"`
	Code    string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewApiError(status int, code, message string, details interface{}) *ApiError {
	return &ApiError{Status: status, Code: code, Message: message, Details: details}
}

func InvalidRequest(message string, details interface{}) *ApiError {
	return NewApiError(400, ErrCodeInvalidRequest, message, details)
}

func NotFound(message string, details interface{}) *ApiError {
	return NewApiError(404, ErrCodeNotFound, message, details)
}
