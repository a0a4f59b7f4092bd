package list_rates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	ratesService "github.com/peppertree17/booking-service/internal/service/rates"
	"github.com/peppertree17/booking-service/internal/service/rates/models"
)

const (
	msgInvalidKind   = "invalid kind parameter, expected base or special"
	msgInvalidGuests = "invalid guests parameter"
)

type Handler struct {
	service RatesService
	logger  Logger
	// adminView разрешает запрашивать неактивные тарифы.
	// Публичный роут всегда отдает только активные.
	adminView bool
}

func NewHandler(service RatesService, logger Logger, adminView bool) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		adminView: adminView,
	}
}

// Handle GET /api/v1/rates и GET /api/v1/admin/rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRatesRequest{ActiveOnly: true}
	query := r.URL.Query()

	if kind := query.Get("kind"); kind != "" {
		req.Kind = &kind
	}

	if raw := query.Get("guests"); raw != "" {
		guests, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /rates - Invalid guests: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidGuests)
			return
		}
		req.Guests = &guests
	}

	if h.adminView && query.Get("active") == "false" {
		req.ActiveOnly = false
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ratesService.ErrInvalidInput):
			h.logger.Warn("GET /rates - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidKind)

		default:
			h.logger.Error("GET /rates - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
