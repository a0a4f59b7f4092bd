package upsert_rate

import (
	"errors"
	"net/http"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	"github.com/peppertree17/booking-service/internal/api/middleware"
	ratesService "github.com/peppertree17/booking-service/internal/service/rates"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidAmountOrDate = "invalid amount or date format, expected decimal amount and YYYY-MM-DD dates"
	msgInvalidInput        = "invalid rate definition"
	msgOverlappingRate     = "the date window overlaps an existing special rate"
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

// Handle POST /api/v1/admin/rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpsertRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/rates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := actorEmail(r)
	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("POST /admin/rates - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAmountOrDate)
		return
	}

	result, err := h.service.Upsert(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, ratesService.ErrInvalidInput):
			h.logger.Warn("POST /admin/rates - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, ratesService.ErrOverlappingRate):
			h.logger.Warn("POST /admin/rates - Overlapping rate: kind=%s, guests=%d", req.Kind, req.Guests)
			handlers.RespondError(w, http.StatusConflict, msgOverlappingRate)

		default:
			h.logger.Error("POST /admin/rates - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/rates - Rate created: rate_id=%d, kind=%s, guests=%d, by=%s",
		result.ID, result.Kind, result.Guests, actor)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// actorEmail email сотрудника из identity, положенной auth middleware
func actorEmail(r *http.Request) string {
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		return identity.Email
	}
	return "staff"
}
