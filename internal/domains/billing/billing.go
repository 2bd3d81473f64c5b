// Package billing prices a stay from its plan and elapsed time.
package billing

import (
	"fmt"
	"time"

	rateModel "hotel/internal/domains/rate/model"
	"hotel/shared/failure"
	"hotel/shared/money"
)

// RateTable is the reference data the calculator reads.
type RateTable interface {
	BaseRate(plan rateModel.PlanType) (rateModel.BaseRate, error)
	OvertimeRate() (money.Amount, error)
}

// Bill is the breakdown of one stay. Manual extra charges are not part of it.
type Bill struct {
	PlanType       rateModel.PlanType `json:"plan_type"`
	CheckIn        time.Time          `json:"check_in"`
	CheckOut       time.Time          `json:"check_out"`
	Elapsed        time.Duration      `json:"elapsed"         swaggertype:"integer"`
	BaseHours      int                `json:"base_hours"`
	BaseAmount     money.Amount       `json:"base_amount"     swaggertype:"number"`
	OvertimeHours  int64              `json:"overtime_hours"`
	OvertimeRate   money.Amount       `json:"overtime_rate"   swaggertype:"number"`
	OvertimeAmount money.Amount       `json:"overtime_amount" swaggertype:"number"`
	TotalAmount    money.Amount       `json:"total_amount"    swaggertype:"number"`
}

// BilledHours is the elapsed time rounded up to whole hours.
func BilledHours(elapsed time.Duration) int64 {
	return int64((elapsed + time.Hour - 1) / time.Hour)
}

// Compute prices the stay [checkIn, checkOut). Overtime is charged per started hour
// beyond the plan's included hours.
func Compute(table RateTable, plan rateModel.PlanType, checkIn, checkOut time.Time) (Bill, error) {
	if !checkOut.After(checkIn) {
		return Bill{}, fmt.Errorf("check-out %s is not after check-in %s: %w",
			checkOut.Format(time.RFC3339), checkIn.Format(time.RFC3339), failure.InvalidIntervalError)
	}

	base, err := table.BaseRate(plan)
	if err != nil {
		return Bill{}, err
	}

	hourly, err := table.OvertimeRate()
	if err != nil {
		return Bill{}, err
	}

	elapsed := checkOut.Sub(checkIn)
	overtimeHours := max(0, BilledHours(elapsed)-int64(base.Hours))
	overtimeAmount := hourly.Mul(overtimeHours)

	return Bill{
		PlanType:       plan,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Elapsed:        elapsed,
		BaseHours:      base.Hours,
		BaseAmount:     base.Price,
		OvertimeHours:  overtimeHours,
		OvertimeRate:   hourly,
		OvertimeAmount: overtimeAmount,
		TotalAmount:    base.Price.Add(overtimeAmount),
	}, nil
}
