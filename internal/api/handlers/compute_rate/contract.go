package compute_rate

import (
	"context"

	computeRate "github.com/peppertree17/booking-service/internal/usecase/compute_rate"
)

type ComputeRateUseCase interface {
	Execute(ctx context.Context, req *computeRate.Request) (*computeRate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
