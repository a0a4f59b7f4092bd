package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/peppertree17/booking-service/internal/domain"
	bookingRepo "github.com/peppertree17/booking-service/internal/infra/storage/booking"
	rateRepo "github.com/peppertree17/booking-service/internal/infra/storage/rate"
	"github.com/peppertree17/booking-service/internal/pricing"
	"github.com/peppertree17/booking-service/pkg/types"
)

// UseCase use case создания бронирования с публичного сайта
type UseCase struct {
	bookingRepo  BookingRepository
	rateRepo     RateRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rateRepo RateRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		rateRepo:     rateRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}

// Execute выполняет use case создания бронирования.
// Проверка конфликта дат и вставка идут в одной сериализуемой транзакции:
// из двух конкурирующих запросов на пересекающиеся даты пройдет ровно один.
// Стоимость фиксируется по тарифам на момент создания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: %s..%s, guests=%d, email=%s",
		req.CheckinDate, req.CheckoutDate, req.Guests, req.Email)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()
	today := types.NewDateFromTime(now)

	// 2. Валидация входных данных
	dates, err := validateRequest(req, today)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	var quote *pricing.Quote

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Проверяем конфликт дат с блокировкой строк (FOR UPDATE)
		conflicts, err := uc.bookingRepo.FindBlockingInRange(txCtx, dates.checkIn, dates.checkOut, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			ids := make([]string, len(conflicts))
			for i, c := range conflicts {
				ids[i] = fmt.Sprintf("%d", c.ID)
			}
			uc.logger.Warn("CreateBooking: dates %s..%s conflict with bookings [%s]",
				dates.checkIn, dates.checkOut, strings.Join(ids, ", "))
			return fmt.Errorf("%w: bookings [%s]", ErrDateConflict, strings.Join(ids, ", "))
		}

		// 3.2. Загружаем тарифы и считаем стоимость
		base, err := uc.rateRepo.GetActiveBase(txCtx, req.Guests)
		if err != nil && !errors.Is(err, rateRepo.ErrRateNotFound) {
			uc.logger.Error("CreateBooking: failed to get base rate: %v", err)
			return fmt.Errorf("%w: failed to get base rate: %v", ErrInternal, err)
		}

		// Ночи занимают инклюзивный диапазон [checkIn, checkOut-1]
		specials, err := uc.rateRepo.FindSpecialsInRange(txCtx, req.Guests, dates.checkIn, dates.checkOut.AddDays(-1))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get special rates: %v", err)
			return fmt.Errorf("%w: failed to get special rates: %v", ErrInternal, err)
		}

		quote, err = pricing.ComputeQuote(dates.checkIn, dates.checkOut, base, specials)
		if err != nil {
			if errors.Is(err, pricing.ErrNoRateAvailable) {
				uc.logger.Warn("CreateBooking: no rate available for %s..%s, guests=%d",
					dates.checkIn, dates.checkOut, req.Guests)
				return ErrNoRateAvailable
			}
			uc.logger.Error("CreateBooking: failed to compute quote: %v", err)
			return fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
		}

		// 3.3. Создаем бронирование в статусе pending со снимком стоимости
		booking := &domain.Booking{
			CheckIn:         dates.checkIn,
			CheckOut:        dates.checkOut,
			Guests:          req.Guests,
			GuestName:       strings.TrimSpace(req.GuestName),
			Email:           strings.TrimSpace(req.Email),
			Phone:           strings.TrimSpace(req.Phone),
			SpecialRequests: req.SpecialRequests,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
			ComputedTotal:   quote.Total,
			StatusHistory:   domain.StatusHistory{}.AppendStatus(domain.StatusPending, "guest", now, nil),
			Source:          domain.SourceDirect,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDateOverlap) {
				uc.logger.Warn("CreateBooking: constraint rejected overlap for %s..%s",
					dates.checkIn, dates.checkOut)
				return fmt.Errorf("%w: %v", ErrDateConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s",
		result.ID, result.ComputedTotal.StringFixed(2))

	// 4. Уведомления после коммита: сбой отправки не откатывает бронирование
	if err := uc.notifier.SendBookingReceived(ctx, result); err != nil {
		uc.logger.Error("CreateBooking: failed to send guest confirmation for booking id=%d: %v", result.ID, err)
	}
	if err := uc.notifier.SendOwnerNotification(ctx, result); err != nil {
		uc.logger.Error("CreateBooking: failed to notify owner about booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:            result.ID,
		CheckinDate:   result.CheckIn.String(),
		CheckoutDate:  result.CheckOut.String(),
		Nights:        result.Nights(),
		Guests:        result.Guests,
		GuestName:     result.GuestName,
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		ComputedTotal: result.ComputedTotal.StringFixed(2),
		Breakdown:     fromQuoteBreakdown(quote),
		CreatedAt:     result.CreatedAt,
	}, nil
}
