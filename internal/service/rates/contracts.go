package rates

import (
	"context"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

// RateRepository интерфейс репозитория тарифов
type RateRepository interface {
	Create(ctx context.Context, rate *domain.Rate) (*domain.Rate, error)
	GetByID(ctx context.Context, id int64) (*domain.Rate, error)
	GetActiveBase(ctx context.Context, guests int) (*domain.Rate, error)
	FindOverlappingSpecials(ctx context.Context, guests int, start, end types.Date, excludeID *int64) ([]*domain.Rate, error)
	CountActiveBase(ctx context.Context, guests int, excludeID *int64) (int64, error)
	List(ctx context.Context, filter domain.RatesFilter) ([]*domain.Rate, error)
	Deactivate(ctx context.Context, id int64, updatedBy *string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
