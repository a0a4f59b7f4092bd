package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/domain"
	bookingRepo "github.com/peppertree17/booking-service/internal/infra/storage/booking"
	"github.com/peppertree17/booking-service/internal/service/bookings/models"
	"github.com/peppertree17/booking-service/pkg/types"
)

// recentBookings сколько последних бронирований попадает в сводку дашборда
const recentBookings = 5

// Service сервис управления жизненным циклом бронирований (админские операции)
type Service struct {
	bookingRepo  BookingRepository
	notifier     GuestNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifier GuestNotifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider подменяет провайдер времени (для тестирования)
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает страницу бронирований с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = domain.DefaultPageSize
	}
	if filter.PerPage > domain.MaxPageSize {
		filter.PerPage = domain.MaxPageSize
	}

	bookings, total, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings, page=%d", len(bookings), total, filter.Page)
	return models.FromDomainBookingList(bookings, total, filter.Page, filter.PerPage), nil
}

// TransitionStatus переводит бронирование в новый статус.
// Допустимые переходы: pending -> approved/rejected, approved -> cancelled/completed.
// Недопустимый переход не меняет ни статус, ни историю.
//
// После коммита опционально уведомляет гостя; сбой отправки логируется
// и не откатывает переход.
func (s *Service) TransitionStatus(ctx context.Context, id int64, req *models.TransitionStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("TransitionStatus: booking id=%d to status=%s by %s", id, req.Status, req.Actor)

	newStatus, ok := domain.ValidBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("TransitionStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if req.Actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("TransitionStatus: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("TransitionStatus: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		if !domain.CanTransitionStatus(booking.Status, newStatus) {
			s.logger.Warn("TransitionStatus: illegal transition %s -> %s for booking id=%d",
				booking.Status, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, newStatus)
		}

		now := s.timeProvider.Now()
		history := booking.StatusHistory.AppendStatus(newStatus, req.Actor, now, req.Note)

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus, history, req.AdminNotes); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("TransitionStatus: failed to update booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		booking.StatusHistory = history
		if req.AdminNotes != nil {
			booking.AdminNotes = req.AdminNotes
		}
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("TransitionStatus: booking id=%d is now %s", id, updated.Status)

	if req.NotifyGuest {
		if err := s.notifier.SendStatusUpdate(ctx, updated); err != nil {
			s.logger.Error("TransitionStatus: failed to notify guest for booking id=%d: %v", id, err)
		}
	}

	return models.FromDomainBooking(updated), nil
}

// TransitionPayment переводит оплату бронирования в новый статус.
// Статус оплаты живет отдельно от статуса бронирования, с единственным
// ограничением: отклоненное бронирование не принимает partial/paid.
// При переходе в paid фиксируется дата платежа.
func (s *Service) TransitionPayment(ctx context.Context, id int64, req *models.TransitionPaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("TransitionPayment: booking id=%d to payment=%s by %s", id, req.PaymentStatus, req.Actor)

	newStatus, ok := domain.ValidPaymentStatus(req.PaymentStatus)
	if !ok {
		s.logger.Warn("TransitionPayment: invalid payment status=%s for booking id=%d", req.PaymentStatus, id)
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, req.PaymentStatus)
	}
	if req.Actor == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if req.Amount != nil && req.Amount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("TransitionPayment: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("TransitionPayment: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		if !domain.CanTransitionPayment(booking.PaymentStatus, newStatus) {
			s.logger.Warn("TransitionPayment: illegal transition %s -> %s for booking id=%d",
				booking.PaymentStatus, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.PaymentStatus, newStatus)
		}

		if !domain.PaymentAllowedForStatus(booking.Status, newStatus) {
			s.logger.Warn("TransitionPayment: payment %s not allowed for %s booking id=%d",
				newStatus, booking.Status, id)
			return ErrPaymentOnRejected
		}

		now := s.timeProvider.Now()
		update := domain.PaymentUpdate{
			Status:    newStatus,
			Amount:    req.Amount,
			Reference: req.Reference,
			Method:    req.Method,
		}
		if newStatus == domain.PaymentPaid {
			update.Date = &now
		}

		history := booking.StatusHistory.AppendPayment(newStatus, req.Actor, now, req.Note)

		if err := s.bookingRepo.UpdatePayment(txCtx, id, update, history); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("TransitionPayment: failed to update booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
		}

		booking.PaymentStatus = newStatus
		booking.StatusHistory = history
		if req.Amount != nil {
			booking.PaymentAmount = req.Amount
		}
		if update.Date != nil {
			booking.PaymentDate = update.Date
		}
		if req.Reference != nil {
			booking.PaymentReference = req.Reference
		}
		if req.Method != nil {
			booking.PaymentMethod = req.Method
		}
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("TransitionPayment: booking id=%d payment is now %s", id, updated.PaymentStatus)
	return models.FromDomainBooking(updated), nil
}

// Delete физически удаляет бронирование. Операция необратима и
// оставляет след только в журнале сервиса.
func (s *Service) Delete(ctx context.Context, id int64, actor string) error {
	if actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: failed to delete booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Аудитный след удаления: кто, что и в каком состоянии было
	s.logger.Warn("Delete: booking id=%d permanently deleted by %s (guest=%s, %s..%s, status=%s, payment=%s)",
		id, actor, booking.GuestName, booking.CheckIn, booking.CheckOut, booking.Status, booking.PaymentStatus)

	return nil
}

// Stats собирает агрегаты для админской панели
func (s *Service) Stats(ctx context.Context) (*models.DashboardStatsResponse, error) {
	today := types.NewDateFromTime(s.timeProvider.Now())

	stats, err := s.bookingRepo.Stats(ctx, today)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	recent, _, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{Page: 1, PerPage: recentBookings})
	if err != nil {
		s.logger.Error("Stats: failed to fetch recent bookings: %v", err)
		return nil, fmt.Errorf("%w: Stats - failed to fetch recent bookings: %v", ErrInternal, err)
	}

	resp := models.FromDomainStats(stats)
	resp.Recent = make([]models.BookingResponse, 0, len(recent))
	for _, b := range recent {
		resp.Recent = append(resp.Recent, *models.FromDomainBooking(b))
	}
	return resp, nil
}
