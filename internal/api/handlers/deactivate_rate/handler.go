package deactivate_rate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	"github.com/peppertree17/booking-service/internal/api/middleware"
	ratesService "github.com/peppertree17/booking-service/internal/service/rates"
)

const (
	msgInvalidRateID = "invalid rate id"
	msgRateNotFound  = "rate not found"
	msgLastBaseRate  = "cannot deactivate the only base rate for this guest count"
)

type Handler struct {
	service RatesService
	logger  Logger
}

func NewHandler(service RatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/rates/{rateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rateID, err := strconv.ParseInt(mux.Vars(r)["rateId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/rates/{rateId} - Invalid rate ID: %q", mux.Vars(r)["rateId"])
		handlers.RespondBadRequest(w, msgInvalidRateID)
		return
	}

	actor := "staff"
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		actor = identity.Email
	}

	if err := h.service.Deactivate(r.Context(), rateID, actor); err != nil {
		switch {
		case errors.Is(err, ratesService.ErrRateNotFound):
			h.logger.Warn("DELETE /admin/rates/{rateId} - Rate not found: rate_id=%d", rateID)
			handlers.RespondNotFound(w, msgRateNotFound)

		case errors.Is(err, ratesService.ErrLastBaseRate):
			h.logger.Warn("DELETE /admin/rates/{rateId} - Last base rate: rate_id=%d", rateID)
			handlers.RespondBadRequest(w, msgLastBaseRate)

		default:
			h.logger.Error("DELETE /admin/rates/{rateId} - Failed: rate_id=%d, error=%v", rateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/rates/{rateId} - Rate deactivated: rate_id=%d, by=%s", rateID, actor)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
