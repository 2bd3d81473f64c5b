package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestLifecycleFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
	}{
		{name: "IllegalTransitionError", failure: failure.IllegalTransitionError, code: http.StatusConflict},
		{name: "RoomNotAvailableError", failure: failure.RoomNotAvailableError, code: http.StatusConflict},
		{name: "RateNotFoundError", failure: failure.RateNotFoundError, code: http.StatusInternalServerError},
		{name: "BookingNotFoundError", failure: failure.BookingNotFoundError, code: http.StatusNotFound},
		{name: "RoomNotFoundError", failure: failure.RoomNotFoundError, code: http.StatusNotFound},
		{name: "JobNotFoundError", failure: failure.JobNotFoundError, code: http.StatusNotFound},
		{name: "InvalidIntervalError", failure: failure.InvalidIntervalError, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("failed to checkout booking: %w", tt.failure)

			if !errors.Is(wrapped, tt.failure) {
				t.Errorf("expected wrapped error to match %s", tt.name)
			}

			if got := failure.GetCode(wrapped); got != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, got)
			}

			if got := failure.GetMessage(wrapped); got != tt.failure.Message {
				t.Errorf("expected message to be %s, got %s", tt.failure.Message, got)
			}
		})
	}
}

func TestIllegalTransitionMessage(t *testing.T) {
	if failure.IllegalTransitionError.Message != "action not allowed, refresh and retry" {
		t.Errorf("unexpected message %q", failure.IllegalTransitionError.Message)
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}

				return
			}

			f, ok := result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", result)
			}

			expectedF := tt.expected.(*failure.Failure)
			if f.Code != expectedF.Code || f.Message != expectedF.Message {
				t.Errorf("expected %+v, got %+v", expectedF, f)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "BadRequestFromString", err: failure.BadRequestFromString("custom bad request"), code: http.StatusBadRequest, message: "custom bad request"},
		{name: "Unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "NotFound", err: failure.NotFound("room not found"), code: http.StatusNotFound, message: "room not found"},
		{name: "Conflict", err: failure.Conflict("room number already exists"), code: http.StatusConflict, message: "room number already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, f.Message)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("outer: %w", failure.BadRequestFromString("test")),
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIsExpected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "stale status", err: fmt.Errorf("room moved: %w", failure.IllegalTransitionError), want: true},
		{name: "room taken", err: failure.RoomNotAvailableError, want: true},
		{name: "missing rate row", err: fmt.Errorf("no short_3h rate: %w", failure.RateNotFoundError), want: false},
		{name: "driver error", err: errors.New("pq: deadlock detected"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.IsExpected(tt.err); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
