package import_calendar

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/domain"
	bookingRepo "github.com/peppertree17/booking-service/internal/infra/storage/booking"
	"github.com/peppertree17/booking-service/pkg/types"
)

// UseCase use case импорта занятости из iCal-фида внешней платформы.
// Импортированные события становятся бронированиями в статусе pending:
// владелец подтверждает их той же админской операцией, что и прямые
// заявки с сайта. Повторный импорт того же фида идемпотентен, дубликаты
// отсекаются по внешнему UID события.
type UseCase struct {
	bookingRepo  BookingRepository
	fetcher      FeedFetcher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, fetcher FeedFetcher, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		fetcher:      fetcher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}

// Execute выполняет импорт фида
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ImportCalendar: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ImportCalendar: fetching %s feed from %s", req.Platform, req.URL)

	data, err := uc.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		uc.logger.Error("ImportCalendar: fetch failed for %s: %v", req.URL, err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(data))
	if err != nil {
		uc.logger.Error("ImportCalendar: parse failed for %s: %v", req.URL, err)
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	resp := &Response{}
	for _, event := range cal.Events() {
		imported, err := uc.importEvent(ctx, event, req.Platform)
		if err != nil {
			return nil, err
		}
		if imported {
			resp.Imported++
		} else {
			resp.Skipped++
		}
	}

	uc.logger.Info("ImportCalendar: %s feed done, imported=%d, skipped=%d",
		req.Platform, resp.Imported, resp.Skipped)
	return resp, nil
}

// importEvent создает бронирование из одного события фида.
// Возвращает false, если событие пропущено (дубликат или непригодные даты).
func (uc *UseCase) importEvent(ctx context.Context, event *ics.VEvent, platform string) (bool, error) {
	uid := event.Id()
	if uid == "" {
		// Событие без UID дедуплицировать не по чему, заводим свой
		uid = uuid.NewString()
		uc.logger.Warn("ImportCalendar: event without UID, assigned %s", uid)
	}

	_, err := uc.bookingRepo.GetByExternalUID(ctx, uid)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("ImportCalendar: dedup lookup failed for uid=%s: %v", uid, err)
		return false, fmt.Errorf("%w: dedup lookup failed: %v", ErrInternal, err)
	}

	checkIn, checkOut, ok := eventDates(event)
	if !ok {
		uc.logger.Warn("ImportCalendar: event uid=%s has unusable dates, skipped", uid)
		return false, nil
	}

	now := uc.timeProvider.Now()
	actor := "import:" + platform

	booking := &domain.Booking{
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        domain.MaxGuests, // фид не сообщает число гостей, блокируем целиком
		GuestName:     eventSummary(event, platform),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		ComputedTotal: decimal.Zero,
		StatusHistory: domain.StatusHistory{}.AppendStatus(domain.StatusPending, actor, now, nil),
		Source:        domain.BookingSource(platform),
		ExternalUID:   &uid,
	}

	if _, err := uc.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateExternalUID) {
			return false, nil
		}
		if errors.Is(err, bookingRepo.ErrDateOverlap) {
			// Даты уже заняты прямым бронированием: конфликт решает владелец
			uc.logger.Warn("ImportCalendar: event uid=%s overlaps an existing booking, skipped", uid)
			return false, nil
		}
		uc.logger.Error("ImportCalendar: failed to create booking for uid=%s: %v", uid, err)
		return false, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return true, nil
}

// eventDates извлекает полуинтервал дат события.
// Площадки публикуют занятость all-day событиями с эксклюзивным DTEND,
// что совпадает с нашей семантикой [checkIn, checkOut).
func eventDates(event *ics.VEvent) (types.Date, types.Date, bool) {
	var zero types.Date

	start, err := event.GetAllDayStartAt()
	if err != nil {
		start, err = event.GetStartAt()
		if err != nil {
			return zero, zero, false
		}
	}

	end, err := event.GetAllDayEndAt()
	if err != nil {
		end, err = event.GetEndAt()
		if err != nil {
			return zero, zero, false
		}
	}

	checkIn := types.NewDateFromTime(start)
	checkOut := types.NewDateFromTime(end)
	if !checkIn.Before(checkOut) {
		return zero, zero, false
	}

	return checkIn, checkOut, true
}

// eventSummary имя для импортированного бронирования
func eventSummary(event *ics.VEvent, platform string) string {
	if prop := event.GetProperty(ics.ComponentPropertySummary); prop != nil && prop.Value != "" {
		return prop.Value
	}
	return platform + " guest"
}

// validateRequest валидирует запрос импорта
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Platform) == "" {
		return fmt.Errorf("%w: platform is required", ErrInvalidInput)
	}

	if req.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: url must be a valid http(s) address", ErrInvalidInput)
	}

	return nil
}
