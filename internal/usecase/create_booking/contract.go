package create_booking

import (
	"context"
	"time"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindBlockingInRange(ctx context.Context, checkIn, checkOut types.Date, excludeID *int64) ([]*domain.Booking, error)
}

// RateRepository интерфейс репозитория тарифов
type RateRepository interface {
	GetActiveBase(ctx context.Context, guests int) (*domain.Rate, error)
	FindSpecialsInRange(ctx context.Context, guests int, from, to types.Date) ([]*domain.Rate, error)
}

// Notifier интерфейс отправки писем о новом бронировании.
// Отправка идет после коммита и не влияет на результат операции.
type Notifier interface {
	SendBookingReceived(ctx context.Context, booking *domain.Booking) error
	SendOwnerNotification(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
