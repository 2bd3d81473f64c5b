package model

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventJobCreated   EventType = "housekeeping.job_created"
	EventJobCompleted EventType = "housekeeping.job_completed"
)

func (t EventType) IsValid() bool {
	return t == EventJobCreated || t == EventJobCompleted
}

// Event tells housekeeping staff about a job. It is published after the job is committed.
type Event struct {
	Type         EventType  `json:"type"`
	JobID        string     `json:"job_id"`
	JobType      string     `json:"job_type"`
	RoomID       string     `json:"room_id"`
	RoomNumber   string     `json:"room_number"`
	BookingCode  string     `json:"booking_code,omitempty"`
	GuestName    string     `json:"guest_name,omitempty"`
	CheckoutTime *time.Time `json:"checkout_time,omitempty"`
	Priority     string     `json:"priority"`
	Notes        string     `json:"notes,omitempty"`
	PerformedBy  string     `json:"performed_by"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

// Text renders the chat message for the event.
func (e Event) Text() string {
	var sb strings.Builder

	switch e.Type {
	case EventJobCreated:
		fmt.Fprintf(&sb, "Room %s needs %s", e.RoomNumber, e.JobType)
	case EventJobCompleted:
		fmt.Fprintf(&sb, "Room %s %s done", e.RoomNumber, e.JobType)
	default:
		fmt.Fprintf(&sb, "Room %s: %s", e.RoomNumber, e.Type)
	}

	if e.GuestName != "" {
		fmt.Fprintf(&sb, "\nGuest: %s", e.GuestName)
	}

	if e.BookingCode != "" {
		fmt.Fprintf(&sb, "\nBooking: %s", e.BookingCode)
	}

	if e.CheckoutTime != nil {
		fmt.Fprintf(&sb, "\nChecked out: %s", e.CheckoutTime.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(&sb, "\nPriority: %s", e.Priority)

	if e.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", e.Notes)
	}

	if e.PerformedBy != "" {
		fmt.Fprintf(&sb, "\nBy: %s", e.PerformedBy)
	}

	return sb.String()
}
