package model_test

import (
	"testing"

	"hotel/internal/domains/rate/model"
	"hotel/shared/failure"
	"hotel/shared/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(h int) *int {
	return &h
}

func seeded() []model.Rate {
	return []model.Rate{
		{RateType: "short_3h", Price: money.FromMajor(300), DurationHours: hours(3), IsActive: true},
		{RateType: "overnight", Price: money.FromMajor(800), DurationHours: hours(12), IsActive: true},
		{RateType: "extended", Price: money.FromMajor(100), IsActive: true},
	}
}

func mapping() model.Mapping {
	return model.Mapping{
		Plans: map[model.PlanType]string{
			model.PlanShort:     "short_3h",
			model.PlanOvernight: "overnight",
		},
		Overtime: "extended",
	}
}

func TestTable_BaseRate(t *testing.T) {
	table := model.NewTable(seeded(), mapping())

	short, err := table.BaseRate(model.PlanShort)
	require.NoError(t, err)
	assert.Equal(t, 3, short.Hours)
	assert.Equal(t, money.FromMajor(300), short.Price)

	overnight, err := table.BaseRate(model.PlanOvernight)
	require.NoError(t, err)
	assert.Equal(t, 12, overnight.Hours)

	_, err = table.BaseRate(model.PlanType("weekly"))
	assert.ErrorIs(t, err, failure.RateNotFoundError)
}

func TestTable_InactiveRatesAreIgnored(t *testing.T) {
	rates := seeded()
	rates[0].IsActive = false
	rates[2].IsActive = false

	table := model.NewTable(rates, mapping())

	_, err := table.BaseRate(model.PlanShort)
	assert.ErrorIs(t, err, failure.RateNotFoundError)

	_, err = table.OvertimeRate()
	assert.ErrorIs(t, err, failure.RateNotFoundError)

	assert.Len(t, table.Rates(), 1)
}

func TestTable_OvertimeRate(t *testing.T) {
	price, err := model.NewTable(seeded(), mapping()).OvertimeRate()

	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(100), price)
}

func TestTable_MappedRowWithWrongShape(t *testing.T) {
	m := mapping()
	m.Overtime = "short_3h"
	m.Plans[model.PlanShort] = "extended"

	table := model.NewTable(seeded(), m)

	_, err := table.OvertimeRate()
	assert.ErrorIs(t, err, failure.RateNotFoundError)

	_, err = table.BaseRate(model.PlanShort)
	assert.ErrorIs(t, err, failure.RateNotFoundError)
}

func TestPlanType_IsValid(t *testing.T) {
	assert.True(t, model.PlanShort.IsValid())
	assert.True(t, model.PlanOvernight.IsValid())
	assert.False(t, model.PlanType("").IsValid())
	assert.False(t, model.PlanType("hourly").IsValid())
}
