package dto

import (
	"hotel/internal/domains/rate/model"
	"hotel/shared/money"
)

type RateResponse struct {
	RateType      string       `json:"rate_type"`
	Description   string       `json:"description"`
	Price         money.Amount `json:"price"       swaggertype:"number"`
	DurationHours *int         `json:"duration_hours"`
	Hourly        bool         `json:"hourly"`
}

func (r *RateResponse) FromModel(model model.Rate) {
	r.RateType = model.RateType
	r.Description = model.Description
	r.Price = model.Price
	r.DurationHours = model.DurationHours
	r.Hourly = model.IsHourly()
}

type GetRatesResponse struct {
	Rates []RateResponse `json:"rates"`
}

func (r *GetRatesResponse) FromModels(models []model.Rate) {
	r.Rates = make([]RateResponse, len(models))
	for i, mod := range models {
		r.Rates[i].FromModel(mod)
	}
}
