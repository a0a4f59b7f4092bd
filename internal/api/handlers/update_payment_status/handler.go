package update_payment_status

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
	msgInvalidAmount      = "invalid amount, expected a decimal string"
	msgInvalidInput       = "invalid payment update"
	msgBookingNotFound    = "booking not found"
	msgIllegalTransition  = "payment transition is not allowed"
	msgPaymentOnRejected  = "a rejected booking cannot accept payment"
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

// Handle PUT /api/v1/admin/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{bookingId}/payment - Invalid booking ID: %q", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{bookingId}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := "staff"
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		actor = identity.Email
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{bookingId}/payment - Invalid amount: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}

	result, err := h.service.TransitionPayment(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/bookings/{bookingId}/payment - Validation failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PUT /admin/bookings/{bookingId}/payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrPaymentOnRejected):
			h.logger.Warn("PUT /admin/bookings/{bookingId}/payment - Payment on rejected booking: booking_id=%d",
				bookingID)
			handlers.RespondError(w, http.StatusConflict, msgPaymentOnRejected)

		case errors.Is(err, bookingsService.ErrIllegalTransition):
			h.logger.Warn("PUT /admin/bookings/{bookingId}/payment - Illegal transition: booking_id=%d, target=%s",
				bookingID, req.PaymentStatus)
			handlers.RespondError(w, http.StatusConflict, msgIllegalTransition)

		default:
			h.logger.Error("PUT /admin/bookings/{bookingId}/payment - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{bookingId}/payment - Payment updated: booking_id=%d, payment_status=%s, by=%s",
		bookingID, result.PaymentStatus, actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
