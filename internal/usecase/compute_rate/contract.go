package compute_rate

import (
	"context"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

// RateRepository интерфейс репозитория тарифов
type RateRepository interface {
	GetActiveBase(ctx context.Context, guests int) (*domain.Rate, error)
	FindSpecialsInRange(ctx context.Context, guests int, from, to types.Date) ([]*domain.Rate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
