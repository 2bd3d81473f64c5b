package rate

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/rate/model/dto"
	"hotel/internal/domains/rate/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rate
	otel    otel.Otel
}

func New(service service.Rate, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/rates", handler.GetRates)
}

// GetRates lists the active rates used for billing.
// @Summary Get active rates
// @Tags Rate
// @Produce json
// @Success 200 {object} response.Data[dto.GetRatesResponse] "Active rates"
// @Failure 500 {object} response.Error
// @Router /v1/rates [get]
// @Security BearerAuth
func (handler *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRates")
	defer scope.End()

	var (
		rates dto.GetRatesResponse
		err   error
	)

	if rates, err = handler.service.GetAll(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rates")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rates)
}
