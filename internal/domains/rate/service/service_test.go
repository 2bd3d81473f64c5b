package service_test

import (
	"context"
	"errors"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	rateMocks "hotel/internal/domains/rate/mocks"
	"hotel/internal/domains/rate/model"
	"hotel/internal/domains/rate/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/failure"
	"hotel/shared/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Billing.ShortRateType = "short_3h"
	cfg.Billing.OvernightRateType = "overnight"
	cfg.Billing.OvertimeRateType = "extended"

	return cfg
}

func hours(h int) *int {
	return &h
}

func seededRates() []model.Rate {
	return []model.Rate{
		{RateType: "extended", Price: money.FromMajor(100), IsActive: true},
		{RateType: "overnight", Price: money.FromMajor(800), DurationHours: hours(12), IsActive: true},
		{RateType: "short_3h", Price: money.FromMajor(300), DurationHours: hours(3), IsActive: true},
	}
}

func TestRateService_Table(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *rateMocks.MockRate, c *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "cache miss reads repository",
			setupMock: func(repo *rateMocks.MockRate, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), "rate:active", gomock.Any()).Return(cache.Nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(seededRates(), nil)
				c.EXPECT().Save(gomock.Any(), "rate:active", gomock.Any(), 60).Return(nil).AnyTimes()
			},
		},
		{
			name: "cache hit skips repository",
			setupMock: func(_ *rateMocks.MockRate, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), "rate:active", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*[]model.Rate)) = seededRates()

						return nil
					})
			},
		},
		{
			name: "repository error",
			setupMock: func(repo *rateMocks.MockRate, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := rateMocks.NewMockRate(ctrl)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(repo, redisCache)

			svc := service.New(repo, newConfig(), redisCache, mocks.NewOtel())

			table, err := svc.Table(context.Background())
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)

			base, err := table.BaseRate(model.PlanShort)
			require.NoError(t, err)
			assert.Equal(t, 3, base.Hours)
			assert.Equal(t, money.FromMajor(300), base.Price)

			overtime, err := table.OvertimeRate()
			require.NoError(t, err)
			assert.Equal(t, money.FromMajor(100), overtime)
		})
	}
}

func TestRateService_TableWithoutHourlyRate(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := rateMocks.NewMockRate(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(seededRates()[1:], nil)
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(repo, newConfig(), redisCache, mocks.NewOtel())

	table, err := svc.Table(context.Background())
	require.NoError(t, err)

	_, err = table.OvertimeRate()
	assert.ErrorIs(t, err, failure.RateNotFoundError)
}

func TestRateService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := rateMocks.NewMockRate(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(seededRates(), nil)
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(repo, newConfig(), redisCache, mocks.NewOtel())

	res, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Rates, 3)
	assert.True(t, res.Rates[0].Hourly)
	assert.Equal(t, "extended", res.Rates[0].RateType)
	assert.False(t, res.Rates[2].Hourly)
}
