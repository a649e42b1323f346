package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeConnectionFailed = "CONNECTION_FAILED"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DriverError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type DriverError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *DriverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// NewDriverError creates a new DriverError.
func NewDriverError(code, message string, err error) *DriverError {
	return &DriverError{Code: code, Message: message, Err: err}
}

// NewConnectionFailedError reports a failed or empty fetch, naming the driver
// and the attempted URL. This is the only error a detail lookup raises.
func NewConnectionFailedError(driver, url string, err error) *DriverError {
	return &DriverError{
		Code:    ErrCodeConnectionFailed,
		Message: fmt.Sprintf("the connection to %s has failed for the %s driver", url, driver),
		Err:     err,
	}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *DriverError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
