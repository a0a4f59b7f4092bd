package update_payment_status

import (
	"context"

	"github.com/peppertree17/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	TransitionPayment(ctx context.Context, id int64, req *models.TransitionPaymentRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
