package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Rate=MockRateService

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/rate/model"
	"hotel/internal/domains/rate/model/dto"
	"hotel/internal/domains/rate/repository"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/rs/zerolog/log"
)

const (
	cacheActiveRates = "rate:active"
)

type Rate interface {
	// Table builds the reference-data snapshot the billing calculator reads.
	Table(ctx context.Context) (model.Table, error)
	GetAll(ctx context.Context) (dto.GetRatesResponse, error)
}

type serviceImpl struct {
	repo  repository.Rate
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Rate, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Rate {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// MappingFromConfig resolves which rate rows price each plan.
func MappingFromConfig(cfg *config.Config) model.Mapping {
	return model.Mapping{
		Plans: map[model.PlanType]string{
			model.PlanShort:     cfg.Billing.ShortRateType,
			model.PlanOvernight: cfg.Billing.OvernightRateType,
		},
		Overtime: cfg.Billing.OvertimeRateType,
	}
}

func (s *serviceImpl) Table(ctx context.Context) (res model.Table, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Table")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rates, err := s.activeRates(ctx)
	if err != nil {
		return res, err
	}

	return model.NewTable(rates, MappingFromConfig(s.cfg)), nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetRatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rates, err := s.activeRates(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(rates)

	return res, nil
}

func (s *serviceImpl) activeRates(ctx context.Context) ([]model.Rate, error) {
	var rates []model.Rate

	if err := s.cache.Get(ctx, cacheActiveRates, &rates); err == nil {
		log.Debug().Str("cacheKey", cacheActiveRates).Msg("cache hit for active rates")

		return rates, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldRateType, SortDir: gDto.SortDirAsc}

	rates, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active rates")

		return nil, fmt.Errorf("failed to get active rates: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheActiveRates, rates, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active rates to cache")
		}
	}()

	return rates, nil
}
