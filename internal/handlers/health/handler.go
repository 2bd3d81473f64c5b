package health

import (
	"context"
	"net/http"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

type check struct {
	name string
	ping func(ctx context.Context) error
}

type Handler struct {
	checks []check
	otel   otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return Handler{
		checks: []check{
			{name: "postgres_write", ping: db.Write.PingContext},
			{name: "postgres_read", ping: db.Read.PingContext},
			{name: "redis", ping: func(ctx context.Context) error { return redis.Ping(ctx).Err() }},
		},
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/health", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Live)
		routerGroup.Get("/ready", handler.Ready)
	})
}

// Live reports that the process is serving requests.
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Router /health [get]
func (handler *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, "ok")
}

// Ready pings every backing store.
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health/ready [get]
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Ready")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	for _, c := range handler.checks {
		if err := c.ping(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("dependency", c.name).Msg("readiness check failed")

			response.WithUnhealthy(w)

			return
		}
	}

	response.WithMessage(w, http.StatusOK, "ok")
}
