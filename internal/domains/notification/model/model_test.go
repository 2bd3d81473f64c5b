package model_test

import (
	"testing"
	"time"

	"hotel/internal/domains/notification/model"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Text(t *testing.T) {
	checkout := time.Date(2026, time.March, 14, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event model.Event
		want  string
	}{
		{
			name: "cleaning after checkout",
			event: model.Event{
				Type:         model.EventJobCreated,
				JobType:      "cleaning",
				RoomNumber:   "101",
				GuestName:    "Somchai",
				CheckoutTime: &checkout,
				Priority:     "normal",
				Notes:        "minibar used",
				PerformedBy:  "reception-1",
			},
			want: "Room 101 needs cleaning\nGuest: Somchai\nChecked out: 2026-03-14 13:30\nPriority: normal\nNotes: minibar used\nBy: reception-1",
		},
		{
			name: "completion",
			event: model.Event{
				Type:        model.EventJobCompleted,
				JobType:     "cleaning",
				RoomNumber:  "101",
				Priority:    "normal",
				PerformedBy: "hk-1",
			},
			want: "Room 101 cleaning done\nPriority: normal\nBy: hk-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Text())
		})
	}
}

func TestEventType_IsValid(t *testing.T) {
	assert.True(t, model.EventJobCreated.IsValid())
	assert.True(t, model.EventJobCompleted.IsValid())
	assert.False(t, model.EventType("room.cleaned").IsValid())
}
