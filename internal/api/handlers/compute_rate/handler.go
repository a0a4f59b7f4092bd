package compute_rate

import (
	"errors"
	"net/http"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	computeRate "github.com/peppertree17/booking-service/internal/usecase/compute_rate"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid rate request"
	msgNoRateAvailable    = "no rate is configured for the selected dates"
)

type Handler struct {
	useCase ComputeRateUseCase
	logger  Logger
}

func NewHandler(useCase ComputeRateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rates/calculate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req computeRate.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rates/calculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, computeRate.ErrInvalidInput):
			h.logger.Warn("POST /rates/calculate - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, computeRate.ErrNoRateAvailable):
			h.logger.Warn("POST /rates/calculate - No rate available: checkin=%s, checkout=%s, guests=%d",
				req.CheckinDate, req.CheckoutDate, req.Guests)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoRateAvailable)

		default:
			h.logger.Error("POST /rates/calculate - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
