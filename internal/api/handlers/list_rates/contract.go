package list_rates

import (
	"context"

	"github.com/peppertree17/booking-service/internal/service/rates/models"
)

type RatesService interface {
	List(ctx context.Context, req *models.ListRatesRequest) (*models.RateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
