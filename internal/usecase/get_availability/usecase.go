package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/peppertree17/booking-service/pkg/types"
)

// UseCase use case получения занятости месяца для календаря на сайте
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute возвращает занятые дни указанного месяца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if req.Year < 2000 || req.Year > 2200 {
		return nil, fmt.Errorf("%w: year is out of range", ErrInvalidInput)
	}

	month := time.Month(req.Month)
	monthStart := types.NewDate(req.Year, month, 1)
	nextMonth := monthStart.AddDays(daysInMonth(req.Year, month))

	bookings, err := uc.bookingRepo.FindBlockingInRange(ctx, monthStart, nextMonth, nil)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to fetch bookings for %d-%02d: %v", req.Year, req.Month, err)
		return nil, fmt.Errorf("%w: failed to fetch bookings: %v", ErrInternal, err)
	}

	occupied := occupiedDays(req.Year, month, bookings)
	uc.logger.Info("GetAvailability: %d-%02d has %d occupied days", req.Year, req.Month, len(occupied))

	return &Response{
		Year:          req.Year,
		Month:         req.Month,
		OccupiedDates: occupied,
	}, nil
}
