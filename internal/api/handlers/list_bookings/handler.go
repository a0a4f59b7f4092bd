package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	bookingsService "github.com/peppertree17/booking-service/internal/service/bookings"
	"github.com/peppertree17/booking-service/internal/service/bookings/models"
	"github.com/peppertree17/booking-service/pkg/types"
)

const (
	msgInvalidFilter = "invalid filter parameters"
	msgInvalidDate   = "invalid date filter, expected YYYY-MM-DD"
	msgInvalidPage   = "invalid pagination parameters"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if paymentStatus := query.Get("payment_status"); paymentStatus != "" {
		req.PaymentStatus = &paymentStatus
	}

	if raw := query.Get("start_date"); raw != "" {
		start, err := types.NewDateFromString(raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.StartDate = &start
	}
	if raw := query.Get("end_date"); raw != "" {
		end, err := types.NewDateFromString(raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.EndDate = &end
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New(msgInvalidPage)
		}
		req.Page = page
	}
	if raw := query.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New(msgInvalidPage)
		}
		req.PerPage = perPage
	}

	return req, nil
}
