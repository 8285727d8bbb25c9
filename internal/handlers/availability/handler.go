package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rentwheels/infras/otel"
	"rentwheels/internal/availability"
	"rentwheels/shared/constant"
	"rentwheels/shared/timezone"
	"rentwheels/transport/http/response"
)

type Handler struct {
	engine availability.Engine
	clock  timezone.Clock
	otel   otel.Otel
}

func New(engine availability.Engine, clock timezone.Clock, otel otel.Otel) Handler {
	return Handler{
		engine: engine,
		clock:  clock,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Post("/sweep", handler.Sweep)
	})
}

// Sweep runs a reconciliation pass on demand.
// @Summary Run an availability sweep
// @Description Completes reservations whose end date has passed and releases their cars.
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[availability.SweepResult] "Sweep result"
// @Failure 500 {object} response.Error
// @Router /v1/availability/sweep [post]
// @Security BearerAuth
func (handler *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Sweep")
	defer scope.End()

	res, err := handler.engine.Sweep(ctx, timezone.Today(handler.clock))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Strs("completed", res.CompletedReservationIDs).Msg("availability sweep finished with errors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
