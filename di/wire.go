//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/consumer"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	housekeepingRepository "hotel/internal/domains/housekeeping/repository"
	housekeepingService "hotel/internal/domains/housekeeping/service"
	lifecycleService "hotel/internal/domains/lifecycle/service"
	notificationService "hotel/internal/domains/notification/service"
	rateRepository "hotel/internal/domains/rate/repository"
	rateService "hotel/internal/domains/rate/service"
	receiptService "hotel/internal/domains/receipt/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"

	bookingHandler "hotel/internal/handlers/booking"
	healthHandler "hotel/internal/handlers/health"
	housekeepingHandler "hotel/internal/handlers/housekeeping"
	rateHandler "hotel/internal/handlers/rate"
	roomHandler "hotel/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var rateDomain = wire.NewSet(
	rateRepository.New,
	rateService.New,
)

var housekeepingDomain = wire.NewSet(
	housekeepingRepository.New,
	housekeepingService.New,
)

var lifecycleDomain = wire.NewSet(
	receiptService.New,
	notificationService.NewPublisher,
	lifecycleService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	rateDomain,
	housekeepingDomain,
	lifecycleDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	roomHandler.New,
	bookingHandler.New,
	housekeepingHandler.New,
	rateHandler.New,
	router.New,
)

var notifier = wire.NewSet(
	notificationService.NewDispatcher,
	notificationService.NewConsumerHandler,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeNotifier() *consumer.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		notifier,
		consumer.New,
	)

	return &consumer.Consumer{}
}
