package model

import (
	"fmt"
	"time"

	rateModel "hotel/internal/domains/rate/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/failure"
	"hotel/shared/model"
	"hotel/shared/money"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldCode            = "code"
	FieldRoomID          = "room_id"
	FieldGuestName       = "guest_name"
	FieldGuestPhone      = "guest_phone"
	FieldGuestIDNumber   = "guest_id_number"
	FieldGuestCount      = "guest_count"
	FieldPlanType        = "plan_type"
	FieldStatus          = "status"
	FieldPlannedCheckIn  = "planned_check_in"
	FieldPlannedCheckOut = "planned_check_out"
	FieldActualCheckIn   = "actual_check_in"
	FieldActualCheckOut  = "actual_check_out"
	FieldBaseAmount      = "base_amount"
	FieldExtraAmount     = "extra_amount"
	FieldTotalAmount     = "total_amount"
	FieldNotes           = "notes"
	FieldCheckoutNotes   = "checkout_notes"

	codePrefix = "BK"
)

type Booking struct {
	ID              string             `db:"id"`
	Code            string             `db:"code"`
	RoomID          string             `db:"room_id"`
	RoomNumber      string             `db:"room_number"       table:"rooms" column:"number"`
	GuestName       string             `db:"guest_name"`
	GuestPhone      string             `db:"guest_phone"`
	GuestIDNumber   string             `db:"guest_id_number"`
	GuestCount      int                `db:"guest_count"`
	PlanType        rateModel.PlanType `db:"plan_type"`
	Status          Status             `db:"status"`
	PlannedCheckIn  time.Time          `db:"planned_check_in"`
	PlannedCheckOut time.Time          `db:"planned_check_out"`
	ActualCheckIn   *time.Time         `db:"actual_check_in"`
	ActualCheckOut  *time.Time         `db:"actual_check_out"`
	BaseAmount      money.Amount       `db:"base_amount"`
	ExtraAmount     money.Amount       `db:"extra_amount"`
	TotalAmount     money.Amount       `db:"total_amount"`
	Notes           string             `db:"notes"`
	CheckoutNotes   string             `db:"checkout_notes"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
		roomModel.TableName, roomModel.TableName, roomModel.FieldID, TableName, FieldRoomID)
}

// NewCode returns a human readable booking code such as BK260314A1B2C3.
func NewCode(now time.Time) string {
	return shared.GenerateCode(codePrefix, now)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
// Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Confirm moves a pending reservation to confirmed.
func (b *Booking) Confirm() error {
	return b.moveTo(StatusConfirmed)
}

// Cancel withdraws a pending or confirmed reservation.
func (b *Booking) Cancel() error {
	return b.moveTo(StatusCancelled)
}

// CheckIn starts the stay at the given instant.
func (b *Booking) CheckIn(at time.Time) error {
	if err := b.moveTo(StatusCheckedIn); err != nil {
		return err
	}

	b.ActualCheckIn = &at

	return b.Validate()
}

// CheckOut closes the stay. total = base + extra, where base is the computed bill.
func (b *Booking) CheckOut(at time.Time, billed, extra money.Amount, notes string) error {
	if extra.IsNegative() {
		return failure.BadRequestFromString(fmt.Sprintf("extra_amount %s must not be negative", extra))
	}

	if err := b.moveTo(StatusCheckedOut); err != nil {
		return err
	}

	b.ActualCheckOut = &at
	b.BaseAmount = billed
	b.ExtraAmount = extra
	b.TotalAmount = billed.Add(extra)
	b.CheckoutNotes = notes

	return b.Validate()
}

func (b *Booking) moveTo(to Status) error {
	if err := b.Status.Transition(to); err != nil {
		return err
	}

	b.Status = to

	return nil
}
