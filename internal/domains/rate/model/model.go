package model

import (
	"hotel/shared/model"
	"hotel/shared/money"
)

const (
	TableName  = "rates"
	EntityName = "rate"

	FieldID            = "id"
	FieldRateType      = "rate_type"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldDurationHours = "duration_hours"
	FieldIsActive      = "is_active"
)

// Rate is read-only reference data. A nil DurationHours marks an hourly rate.
type Rate struct {
	ID            string       `db:"id"             json:"id"`
	RateType      string       `db:"rate_type"      json:"rate_type"`
	Description   string       `db:"description"    json:"description"`
	Price         money.Amount `db:"price"          json:"price"`
	DurationHours *int         `db:"duration_hours" json:"duration_hours"`
	IsActive      bool         `db:"is_active"      json:"is_active"`
	model.Metadata
}

func (r Rate) IsHourly() bool {
	return r.DurationHours == nil
}
