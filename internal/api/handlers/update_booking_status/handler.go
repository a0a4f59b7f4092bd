package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	"github.com/peppertree17/booking-service/internal/api/middleware"
	bookingsService "github.com/peppertree17/booking-service/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidInput       = "invalid status update"
	msgBookingNotFound    = "booking not found"
	msgIllegalTransition  = "status transition is not allowed"
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

// Handle PUT /api/v1/admin/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{bookingId}/status - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{bookingId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := "staff"
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		actor = identity.Email
	}

	result, err := h.service.TransitionStatus(r.Context(), bookingID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/bookings/{bookingId}/status - Validation failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PUT /admin/bookings/{bookingId}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrIllegalTransition):
			h.logger.Warn("PUT /admin/bookings/{bookingId}/status - Illegal transition: booking_id=%d, target=%s",
				bookingID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgIllegalTransition)

		default:
			h.logger.Error("PUT /admin/bookings/{bookingId}/status - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{bookingId}/status - Status updated: booking_id=%d, status=%s, by=%s",
		bookingID, result.Status, actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
