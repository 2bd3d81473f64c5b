package dto

import (
	"fmt"
	"time"

	"hotel/internal/domains/billing"
	"hotel/internal/domains/booking/model"
	rateModel "hotel/internal/domains/rate/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/money"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// Guest holds the guest details shared by reservations and walk-ins.
type Guest struct {
	GuestName     string `json:"guest_name"      validate:"required,max=100"`
	GuestPhone    string `json:"guest_phone"     validate:"omitempty,max=20"`
	GuestIDNumber string `json:"guest_id_number" validate:"omitempty,max=50"`
	GuestCount    int    `json:"guest_count"     validate:"required,min=1,max=20"`
}

type ReserveBookingRequest struct {
	RoomID          string             `json:"room_id"           validate:"required,uuid"`
	PlanType        rateModel.PlanType `json:"plan_type"         validate:"required,enum"`
	PlannedCheckIn  string             `json:"planned_check_in"  validate:"required"`
	PlannedCheckOut string             `json:"planned_check_out" validate:"required"`
	Notes           string             `json:"notes"             validate:"omitempty,max=500"`
	Guest
}

// Interval parses the planned stay. end must be after start.
func (r *ReserveBookingRequest) Interval() (start, end time.Time, err error) {
	return ParseInterval(r.PlannedCheckIn, r.PlannedCheckOut)
}

func (r *ReserveBookingRequest) ToModel(user string, start, end time.Time) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:              uuid.NewString(),
		Code:            model.NewCode(now),
		RoomID:          r.RoomID,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		GuestIDNumber:   r.GuestIDNumber,
		GuestCount:      r.GuestCount,
		PlanType:        r.PlanType,
		Status:          model.StatusPending,
		PlannedCheckIn:  start,
		PlannedCheckOut: end,
		Notes:           r.Notes,
		Metadata:        gModel.NewMetadata(user, now),
	}
}

// CheckInRequest registers a walk-in guest. Without a planned check-out the stay
// lasts the hours included in the plan.
type CheckInRequest struct {
	PlanType        rateModel.PlanType `json:"plan_type"         validate:"required,enum"`
	PlannedCheckOut string             `json:"planned_check_out" validate:"omitempty"`
	Notes           string             `json:"notes"             validate:"omitempty,max=500"`
	Guest
}

// ToModel builds the booking as checked in at now.
func (r *CheckInRequest) ToModel(roomID, user string, now, plannedCheckOut time.Time) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		Code:            model.NewCode(now),
		RoomID:          roomID,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		GuestIDNumber:   r.GuestIDNumber,
		GuestCount:      r.GuestCount,
		PlanType:        r.PlanType,
		Status:          model.StatusCheckedIn,
		PlannedCheckIn:  now,
		PlannedCheckOut: plannedCheckOut,
		ActualCheckIn:   &now,
		Notes:           r.Notes,
		Metadata:        gModel.NewMetadata(user, now),
	}
}

// UpdateBookingRequest edits a reservation that has not started. Nil fields are kept.
type UpdateBookingRequest struct {
	GuestName       *string `json:"guest_name"        validate:"omitempty,max=100"`
	GuestPhone      *string `json:"guest_phone"       validate:"omitempty,max=20"`
	GuestIDNumber   *string `json:"guest_id_number"   validate:"omitempty,max=50"`
	GuestCount      *int    `json:"guest_count"       validate:"omitempty,min=1,max=20"`
	PlannedCheckIn  *string `json:"planned_check_in"  validate:"omitempty"`
	PlannedCheckOut *string `json:"planned_check_out" validate:"omitempty"`
	Notes           *string `json:"notes"             validate:"omitempty,max=500"`
}

// ReschedulesStay reports whether the planned interval changes.
func (r *UpdateBookingRequest) ReschedulesStay() bool {
	return r.PlannedCheckIn != nil || r.PlannedCheckOut != nil
}

// Apply copies the requested changes onto booking.
func (r *UpdateBookingRequest) Apply(booking *model.Booking) error {
	if r.GuestName != nil {
		booking.GuestName = *r.GuestName
	}

	if r.GuestPhone != nil {
		booking.GuestPhone = *r.GuestPhone
	}

	if r.GuestIDNumber != nil {
		booking.GuestIDNumber = *r.GuestIDNumber
	}

	if r.GuestCount != nil {
		booking.GuestCount = *r.GuestCount
	}

	if r.Notes != nil {
		booking.Notes = *r.Notes
	}

	if !r.ReschedulesStay() {
		return nil
	}

	start := timezone.Stamp(booking.PlannedCheckIn)
	if r.PlannedCheckIn != nil {
		start = *r.PlannedCheckIn
	}

	end := timezone.Stamp(booking.PlannedCheckOut)
	if r.PlannedCheckOut != nil {
		end = *r.PlannedCheckOut
	}

	var err error

	booking.PlannedCheckIn, booking.PlannedCheckOut, err = ParseInterval(start, end)

	return err
}

// Fields lists the columns an edit may touch.
func Fields(booking model.Booking) map[string]any {
	return map[string]any{
		model.FieldGuestName:       booking.GuestName,
		model.FieldGuestPhone:      booking.GuestPhone,
		model.FieldGuestIDNumber:   booking.GuestIDNumber,
		model.FieldGuestCount:      booking.GuestCount,
		model.FieldPlannedCheckIn:  booking.PlannedCheckIn,
		model.FieldPlannedCheckOut: booking.PlannedCheckOut,
		model.FieldBaseAmount:      booking.BaseAmount,
		model.FieldTotalAmount:     booking.TotalAmount,
		model.FieldNotes:           booking.Notes,
		constant.FieldModifiedAt:   booking.ModifiedAt,
		constant.FieldModifiedBy:   booking.ModifiedBy,
	}
}

type CheckoutRequest struct {
	ExtraAmount money.Amount `json:"extra_amount" validate:"min=0"       swaggertype:"number"`
	ExtraNotes  string       `json:"extra_notes"  validate:"omitempty,max=500"`
}

// ParseInterval reads two timestamps and rejects empty or reversed intervals.
func ParseInterval(start, end string) (time.Time, time.Time, error) {
	from, err := timezone.ParseTimestamp(start)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequest(err)
	}

	to, err := timezone.ParseTimestamp(end)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequest(err)
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("interval %s - %s: %w", start, end, failure.InvalidIntervalError)
	}

	return from, to, nil
}

type BookingResponse struct {
	ID              string             `json:"id"`
	Code            string             `json:"code"`
	RoomID          string             `json:"room_id"`
	RoomNumber      string             `json:"room_number"`
	GuestName       string             `json:"guest_name"`
	GuestPhone      string             `json:"guest_phone"`
	GuestIDNumber   string             `json:"guest_id_number"`
	GuestCount      int                `json:"guest_count"`
	PlanType        rateModel.PlanType `json:"plan_type"`
	Status          model.Status       `json:"status"`
	PlannedCheckIn  string             `json:"planned_check_in"`
	PlannedCheckOut string             `json:"planned_check_out"`
	ActualCheckIn   *string            `json:"actual_check_in"`
	ActualCheckOut  *string            `json:"actual_check_out"`
	BaseAmount      money.Amount       `json:"base_amount"  swaggertype:"number"`
	ExtraAmount     money.Amount       `json:"extra_amount" swaggertype:"number"`
	TotalAmount     money.Amount       `json:"total_amount" swaggertype:"number"`
	Notes           string             `json:"notes"`
	CheckoutNotes   string             `json:"checkout_notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.GuestName = model.GuestName
	r.GuestPhone = model.GuestPhone
	r.GuestIDNumber = model.GuestIDNumber
	r.GuestCount = model.GuestCount
	r.PlanType = model.PlanType
	r.Status = model.Status
	r.PlannedCheckIn = timezone.Stamp(model.PlannedCheckIn)
	r.PlannedCheckOut = timezone.Stamp(model.PlannedCheckOut)
	r.ActualCheckIn = timezone.StampOptional(model.ActualCheckIn)
	r.ActualCheckOut = timezone.StampOptional(model.ActualCheckOut)
	r.BaseAmount = model.BaseAmount
	r.ExtraAmount = model.ExtraAmount
	r.TotalAmount = model.TotalAmount
	r.Notes = model.Notes
	r.CheckoutNotes = model.CheckoutNotes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// EstimateResponse is the bill of a stay as of AsOf. Final marks a closed stay.
type EstimateResponse struct {
	BookingID   string       `json:"booking_id"`
	Code        string       `json:"code"`
	Status      model.Status `json:"status"`
	AsOf        string       `json:"as_of"`
	Final       bool         `json:"final"`
	Bill        billing.Bill `json:"bill"`
	ExtraAmount money.Amount `json:"extra_amount" swaggertype:"number"`
	TotalAmount money.Amount `json:"total_amount" swaggertype:"number"`
}

func (r *EstimateResponse) FromBill(booking model.Booking, bill billing.Bill) {
	r.BookingID = booking.ID
	r.Code = booking.Code
	r.Status = booking.Status
	r.AsOf = timezone.Stamp(bill.CheckOut)
	r.Final = booking.Status == model.StatusCheckedOut
	r.Bill = bill
	r.ExtraAmount = booking.ExtraAmount
	r.TotalAmount = bill.TotalAmount.Add(booking.ExtraAmount)
}

// FromCheckout reports the bill stored at checkout. The overtime breakdown is not
// stored, so the billed amount is carried as a single base line.
func (r *EstimateResponse) FromCheckout(booking model.Booking) {
	checkIn, checkOut := *booking.ActualCheckIn, *booking.ActualCheckOut

	r.BookingID = booking.ID
	r.Code = booking.Code
	r.Status = booking.Status
	r.AsOf = timezone.Stamp(checkOut)
	r.Final = true
	r.Bill = billing.Bill{
		PlanType:    booking.PlanType,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Elapsed:     checkOut.Sub(checkIn),
		BaseAmount:  booking.BaseAmount,
		TotalAmount: booking.BaseAmount,
	}
	r.ExtraAmount = booking.ExtraAmount
	r.TotalAmount = booking.TotalAmount
}
