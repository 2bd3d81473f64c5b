package model

import (
	"fmt"

	"hotel/shared/failure"
	"hotel/shared/money"
)

// Mapping names the rate_type row that prices each plan and the hourly overtime row.
type Mapping struct {
	Plans    map[PlanType]string
	Overtime string
}

// BaseRate is the included duration and flat price of a plan.
type BaseRate struct {
	Hours int          `json:"hours"`
	Price money.Amount `json:"price"`
}

// Table is an immutable snapshot of the active rates.
type Table struct {
	rates   map[string]Rate
	mapping Mapping
}

// NewTable keeps only active rows. Later rows with the same rate_type win.
func NewTable(rates []Rate, mapping Mapping) Table {
	byType := make(map[string]Rate, len(rates))

	for _, rate := range rates {
		if !rate.IsActive {
			continue
		}

		byType[rate.RateType] = rate
	}

	return Table{rates: byType, mapping: mapping}
}

func (t Table) BaseRate(plan PlanType) (BaseRate, error) {
	rateType, ok := t.mapping.Plans[plan]
	if !ok {
		return BaseRate{}, fmt.Errorf("no rate type mapped for plan %q: %w", plan, failure.RateNotFoundError)
	}

	rate, ok := t.rates[rateType]
	if !ok || rate.IsHourly() {
		return BaseRate{}, fmt.Errorf("no active base rate %q: %w", rateType, failure.RateNotFoundError)
	}

	return BaseRate{Hours: *rate.DurationHours, Price: rate.Price}, nil
}

func (t Table) OvertimeRate() (money.Amount, error) {
	rate, ok := t.rates[t.mapping.Overtime]
	if !ok || !rate.IsHourly() {
		return 0, fmt.Errorf("no active hourly rate %q: %w", t.mapping.Overtime, failure.RateNotFoundError)
	}

	return rate.Price, nil
}

// Rates returns the active rows in no particular order.
func (t Table) Rates() []Rate {
	rates := make([]Rate, 0, len(t.rates))
	for _, rate := range t.rates {
		rates = append(rates, rate)
	}

	return rates
}
