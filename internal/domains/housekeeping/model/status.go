package model

import (
	"fmt"

	"hotel/shared/failure"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var jobTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusCompleted},
}

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// IsOpen reports whether the job still has work left.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Transition(to Status) error {
	for _, allowed := range jobTransitions[s] {
		if allowed == to {
			return nil
		}
	}

	return fmt.Errorf("job %s cannot become %s: %w", s, to, failure.IllegalTransitionError)
}
