package bookings

import (
	"context"
	"time"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, history domain.StatusHistory, adminNotes *string) error
	UpdatePayment(ctx context.Context, id int64, payment domain.PaymentUpdate, history domain.StatusHistory) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, today types.Date) (*domain.DashboardStats, error)
}

// GuestNotifier интерфейс отправки писем гостю о смене статуса.
// Отправка идет после коммита транзакции и не влияет на результат операции.
type GuestNotifier interface {
	SendStatusUpdate(ctx context.Context, booking *domain.Booking) error
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
