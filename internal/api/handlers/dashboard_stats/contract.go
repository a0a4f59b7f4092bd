package dashboard_stats

import (
	"context"

	"github.com/peppertree17/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	Stats(ctx context.Context) (*models.DashboardStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
