package repository_test

import (
	"testing"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityFilter(t *testing.T) {
	start := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	filter := repository.AvailabilityFilter("r1", start, end, "b9")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND "+
		"bookings.status IN (:blocking_status_0, :blocking_status_1) AND "+
		"(bookings.planned_check_in < :interval_end AND bookings.planned_check_out > :interval_start) AND "+
		"bookings.id != :exclude_id)", where)

	assert.Equal(t, "r1", args["room_id"])
	assert.Equal(t, model.StatusConfirmed, args["blocking_status_0"])
	assert.Equal(t, model.StatusCheckedIn, args["blocking_status_1"])
	assert.Equal(t, end, args["interval_end"])
	assert.Equal(t, start, args["interval_start"])
	assert.Equal(t, "b9", args["exclude_id"])
}

func TestAvailabilityFilter_NoExclusion(t *testing.T) {
	now := time.Now()

	filter := repository.AvailabilityFilter("r1", now, now.Add(time.Hour), "")
	_, args := filter.GetWhereClause()

	assert.NotContains(t, args, "exclude_id")
}

func TestStatusFilter(t *testing.T) {
	filter := repository.StatusFilter("b1", model.StatusCheckedIn)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id AND bookings.status = :current_status)", where)
	assert.Equal(t, model.StatusCheckedIn, args["current_status"])
}
