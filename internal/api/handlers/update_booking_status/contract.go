package update_booking_status

import (
	"context"

	"github.com/peppertree17/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	TransitionStatus(ctx context.Context, id int64, req *models.TransitionStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
