package upsert_rate

import (
	"context"

	"github.com/peppertree17/booking-service/internal/service/rates/models"
)

type RatesService interface {
	Upsert(ctx context.Context, req *models.UpsertRateRequest) (*models.RateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
