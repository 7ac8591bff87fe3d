package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidDate       = "INVALID_DATE"
	CodeInvalidGuestCount = "INVALID_GUEST_COUNT"
	CodeInvalidState      = "INVALID_STATE"
	CodeExpired           = "EXPIRED"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeConflict          = "CONFLICT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternal          = "INTERNAL_ERROR"
	CodeTimeout           = "TIMEOUT"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

// InvalidDate reports a departure date outside the offer's available set.
func InvalidDate(offerID string, date string) *AppError {
	return &AppError{
		Code:       CodeInvalidDate,
		Message:    "Departure date is not available for this offer",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"offer_id": offerID,
			"date":     date,
		},
	}
}

// InvalidGuestCount reports a guest count outside the bookable range.
func InvalidGuestCount(guests, min, max int) *AppError {
	return &AppError{
		Code:       CodeInvalidGuestCount,
		Message:    fmt.Sprintf("Guest count must be between %d and %d", min, max),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"guests": guests,
		},
	}
}

// InvalidState reports an operation that is not legal for the
// reservation's current status.
func InvalidState(operation, status string) *AppError {
	return &AppError{
		Code:       CodeInvalidState,
		Message:    fmt.Sprintf("Cannot %s a reservation in status %q", operation, status),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"operation": operation,
			"status":    status,
		},
	}
}

// Expired reports that a block's hold deadline has passed.
func Expired(reservationID string) *AppError {
	return &AppError{
		Code:       CodeExpired,
		Message:    "Reservation block has expired",
		HTTPStatus: http.StatusGone,
		Details: map[string]any{
			"reservation_id": reservationID,
		},
	}
}

func Unauthenticated(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthenticated,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
