package failure

import (
	"errors"
	"net/http"
)

// Failure is an error the front desk is meant to see: an HTTP code and a user facing message.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Lifecycle failures. Callers wrap them with %w so errors.Is keeps matching.
var (
	IllegalTransitionError = &Failure{Code: http.StatusConflict, Message: "action not allowed, refresh and retry"}
	RoomNotAvailableError  = &Failure{Code: http.StatusConflict, Message: "room is not available for the requested time"}
	RateNotFoundError      = &Failure{Code: http.StatusInternalServerError, Message: "system error, please contact the administrator"}
	BookingNotFoundError   = &Failure{Code: http.StatusNotFound, Message: "booking not found"}
	RoomNotFoundError      = &Failure{Code: http.StatusNotFound, Message: "room not found"}
	JobNotFoundError       = &Failure{Code: http.StatusNotFound, Message: "housekeeping job not found"}
	InvalidIntervalError   = &Failure{Code: http.StatusBadRequest, Message: "end time must be after start time"}
)

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest turns a decoding or validation error into a 400. Nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

// NotFound returns a 404 whose message is shown as is, e.g. "receipt not found".
func NotFound(message string) error {
	return &Failure{Code: http.StatusNotFound, Message: message}
}

func Conflict(message string) error {
	return &Failure{Code: http.StatusConflict, Message: message}
}

// GetCode returns the code of the first Failure in the chain, 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the user facing message of the first Failure in the chain.
func GetMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return err.Error()
}

// IsExpected reports whether err is an outcome the caller can act on, such as a taken room
// or a stale status, rather than a fault of the system.
func IsExpected(err error) bool {
	return GetCode(err) < http.StatusInternalServerError
}
