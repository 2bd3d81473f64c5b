package model

import (
	"errors"
	"fmt"

	"hotel/shared/failure"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

var ErrInconsistentBooking = errors.New("inconsistent booking")

var bookingTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

// BlockingStatuses hold a room's time slot.
var BlockingStatuses = []Status{StatusConfirmed, StatusCheckedIn}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// IsEditable reports whether guest details and planned times may still change.
func (s Status) IsEditable() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) String() string {
	return string(s)
}

// Transition checks that s may move to the target status.
func (s Status) Transition(to Status) error {
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return nil
		}
	}

	return fmt.Errorf("booking %s cannot become %s: %w", s, to, failure.IllegalTransitionError)
}
