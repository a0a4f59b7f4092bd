package create_booking

import (
	"errors"
	"net/http"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	createBooking "github.com/peppertree17/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid booking request"
	msgDateConflict       = "the selected dates are no longer available"
	msgNoRateAvailable    = "no rate is configured for the selected dates"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrDateConflict):
			h.logger.Warn("POST /bookings - Date conflict: checkin=%s, checkout=%s",
				req.CheckinDate, req.CheckoutDate)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		case errors.Is(err, createBooking.ErrNoRateAvailable):
			h.logger.Warn("POST /bookings - No rate available: checkin=%s, checkout=%s, guests=%d",
				req.CheckinDate, req.CheckoutDate, req.Guests)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoRateAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, checkin=%s, checkout=%s",
		result.ID, result.CheckinDate, result.CheckoutDate)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
