package model

import (
	"fmt"

	"hotel/shared/failure"
)

// Validate checks the status together with the timestamps and amounts it implies.
func (b *Booking) Validate() error {
	if !b.Status.IsValid() {
		return fmt.Errorf("unknown status %q: %w", b.Status, ErrInconsistentBooking)
	}

	if !b.PlanType.IsValid() {
		return fmt.Errorf("unknown plan type %q: %w", b.PlanType, ErrInconsistentBooking)
	}

	if !b.PlannedCheckOut.After(b.PlannedCheckIn) {
		return fmt.Errorf("planned check-out must be after planned check-in: %w", failure.InvalidIntervalError)
	}

	hasCheckIn := b.ActualCheckIn != nil
	wantCheckIn := b.Status == StatusCheckedIn || b.Status == StatusCheckedOut

	if hasCheckIn != wantCheckIn {
		return fmt.Errorf("actual check-in presence %t does not match status %s: %w", hasCheckIn, b.Status, ErrInconsistentBooking)
	}

	hasCheckOut := b.ActualCheckOut != nil
	if hasCheckOut != (b.Status == StatusCheckedOut) {
		return fmt.Errorf("actual check-out presence %t does not match status %s: %w", hasCheckOut, b.Status, ErrInconsistentBooking)
	}

	if hasCheckOut && !b.ActualCheckOut.After(*b.ActualCheckIn) {
		return fmt.Errorf("actual check-out must be after actual check-in: %w", failure.InvalidIntervalError)
	}

	if b.BaseAmount.IsNegative() || b.ExtraAmount.IsNegative() || b.TotalAmount.IsNegative() {
		return fmt.Errorf("amounts must not be negative: %w", ErrInconsistentBooking)
	}

	if b.Status == StatusCheckedOut && b.TotalAmount != b.BaseAmount.Add(b.ExtraAmount) {
		return fmt.Errorf("total %s is not base %s plus extra %s: %w", b.TotalAmount, b.BaseAmount, b.ExtraAmount, ErrInconsistentBooking)
	}

	return nil
}
