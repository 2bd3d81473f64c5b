package model

import (
	"fmt"

	"hotel/shared/failure"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusCleaning    Status = "cleaning"
	StatusMaintenance Status = "maintenance"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Event is something that happened to a room's booking or upkeep.
type Event string

const (
	EventCheckIn          Event = "check_in"
	EventCheckOut         Event = "check_out"
	EventCleaningDone     Event = "cleaning_done"
	EventMaintenanceStart Event = "maintenance_start"
	EventMaintenanceEnd   Event = "maintenance_end"
)

var roomTransitions = map[Event]struct{ from, to Status }{
	EventCheckIn:          {StatusAvailable, StatusOccupied},
	EventCheckOut:         {StatusOccupied, StatusCleaning},
	EventCleaningDone:     {StatusCleaning, StatusAvailable},
	EventMaintenanceStart: {StatusAvailable, StatusMaintenance},
	EventMaintenanceEnd:   {StatusMaintenance, StatusAvailable},
}

// Apply is the only way a room status changes. A check-in against a room that is not
// available reports RoomNotAvailable, every other mismatch IllegalTransition.
func (s Status) Apply(event Event) (Status, error) {
	transition, ok := roomTransitions[event]
	if !ok {
		return s, fmt.Errorf("unknown room event %q: %w", event, failure.IllegalTransitionError)
	}

	if s != transition.from {
		if event == EventCheckIn {
			return s, fmt.Errorf("room is %s: %w", s, failure.RoomNotAvailableError)
		}

		return s, fmt.Errorf("room %s cannot apply %s: %w", s, event, failure.IllegalTransitionError)
	}

	return transition.to, nil
}
