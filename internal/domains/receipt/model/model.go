package model

import (
	"time"

	"hotel/internal/domains/billing"
	bookingModel "hotel/internal/domains/booking/model"
	rateModel "hotel/internal/domains/rate/model"
	"hotel/shared"
	"hotel/shared/money"
)

const numberPrefix = "RC"

// Draft is everything the receipt generator needs to lay out a receipt.
type Draft struct {
	ReceiptNumber string             `json:"receipt_number"`
	BookingID     string             `json:"booking_id"`
	BookingCode   string             `json:"booking_code"`
	RoomID        string             `json:"room_id"`
	RoomNumber    string             `json:"room_number"`
	GuestName     string             `json:"guest_name"`
	GuestPhone    string             `json:"guest_phone"`
	GuestCount    int                `json:"guest_count"`
	PlanType      rateModel.PlanType `json:"plan_type"`
	CheckIn       time.Time          `json:"check_in"`
	CheckOut      time.Time          `json:"check_out"`
	Bill          billing.Bill       `json:"bill"`
	ExtraAmount   money.Amount       `json:"extra_amount" swaggertype:"number"`
	ExtraNotes    string             `json:"extra_notes"`
	TotalAmount   money.Amount       `json:"total_amount" swaggertype:"number"`
	IssuedBy      string             `json:"issued_by"`
	IssuedAt      time.Time          `json:"issued_at"`
}

// NewDraft summarises a checked-out booking.
func NewDraft(booking bookingModel.Booking, bill billing.Bill, issuedBy string, now time.Time) Draft {
	return Draft{
		ReceiptNumber: shared.GenerateCode(numberPrefix, now),
		BookingID:     booking.ID,
		BookingCode:   booking.Code,
		RoomID:        booking.RoomID,
		RoomNumber:    booking.RoomNumber,
		GuestName:     booking.GuestName,
		GuestPhone:    booking.GuestPhone,
		GuestCount:    booking.GuestCount,
		PlanType:      booking.PlanType,
		CheckIn:       bill.CheckIn,
		CheckOut:      bill.CheckOut,
		Bill:          bill,
		ExtraAmount:   booking.ExtraAmount,
		ExtraNotes:    booking.CheckoutNotes,
		TotalAmount:   booking.TotalAmount,
		IssuedBy:      issuedBy,
		IssuedAt:      now,
	}
}
