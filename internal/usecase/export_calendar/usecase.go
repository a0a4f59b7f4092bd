package export_calendar

import (
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"

	"github.com/peppertree17/booking-service/internal/domain"
)

// Config параметры iCal-фида из конфигурации приложения
type Config struct {
	CalendarName string // X-WR-CALNAME
	Description  string // X-WR-CALDESC
	Timezone     string // X-WR-TIMEZONE, например "Africa/Johannesburg"
	UIDDomain    string // доменная часть UID событий
}

// Response сериализованный iCal-фид
type Response struct {
	ICS string
}

// UseCase use case экспорта занятости в iCal-фид для внешних платформ.
// В фид попадают только подтвержденные и завершенные проживания.
type UseCase struct {
	bookingRepo BookingRepository
	cfg         Config
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, cfg Config, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Execute строит iCal-фид по текущим бронированиям
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	bookings, err := uc.bookingRepo.ListExportable(ctx)
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to fetch bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch bookings: %v", ErrInternal, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + uc.cfg.CalendarName + "//EN")
	cal.SetXWRCalName(uc.cfg.CalendarName)
	cal.SetXWRCalDesc(uc.cfg.Description)
	cal.SetXWRTimezone(uc.cfg.Timezone)

	for _, b := range bookings {
		event := cal.AddEvent(uc.eventUID(b))
		event.SetDtStampTime(b.UpdatedAt)
		event.SetAllDayStartAt(b.CheckIn.Time())
		// DTEND эксклюзивный в iCal, полуинтервал переносится как есть
		event.SetAllDayEndAt(b.CheckOut.Time())
		event.SetSummary(uc.eventSummary(b))
		event.SetStatus(ics.ObjectStatusConfirmed)
	}

	uc.logger.Info("ExportCalendar: exported %d bookings", len(bookings))
	return &Response{ICS: cal.Serialize()}, nil
}

// eventUID стабильный UID события: одна и та же бронь всегда дает
// один и тот же UID, внешние календари обновляют событие, а не дублируют
func (uc *UseCase) eventUID(b *domain.Booking) string {
	return fmt.Sprintf("booking-%d@%s", b.ID, uc.cfg.UIDDomain)
}

// eventSummary текст события без персональных данных гостя
func (uc *UseCase) eventSummary(b *domain.Booking) string {
	return fmt.Sprintf("Booked (%d guests)", b.Guests)
}
