package compute_rate

import (
	"context"
	"errors"
	"fmt"

	"github.com/peppertree17/booking-service/internal/domain"
	rateRepo "github.com/peppertree17/booking-service/internal/infra/storage/rate"
	"github.com/peppertree17/booking-service/internal/pricing"
	"github.com/peppertree17/booking-service/pkg/types"
)

// UseCase use case расчета стоимости проживания для публичного сайта
type UseCase struct {
	rateRepo RateRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rateRepo RateRepository, logger Logger) *UseCase {
	return &UseCase{
		rateRepo: rateRepo,
		logger:   logger,
	}
}

// Execute считает стоимость проживания по текущим тарифам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	checkIn, checkOut, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ComputeRate: validation failed: %v", err)
		return nil, err
	}

	base, err := uc.rateRepo.GetActiveBase(ctx, req.Guests)
	if err != nil && !errors.Is(err, rateRepo.ErrRateNotFound) {
		uc.logger.Error("ComputeRate: failed to get base rate: %v", err)
		return nil, fmt.Errorf("%w: failed to get base rate: %v", ErrInternal, err)
	}

	specials, err := uc.rateRepo.FindSpecialsInRange(ctx, req.Guests, checkIn, checkOut.AddDays(-1))
	if err != nil {
		uc.logger.Error("ComputeRate: failed to get special rates: %v", err)
		return nil, fmt.Errorf("%w: failed to get special rates: %v", ErrInternal, err)
	}

	quote, err := pricing.ComputeQuote(checkIn, checkOut, base, specials)
	if err != nil {
		if errors.Is(err, pricing.ErrNoRateAvailable) {
			uc.logger.Warn("ComputeRate: no rate for %s..%s, guests=%d", checkIn, checkOut, req.Guests)
			return nil, ErrNoRateAvailable
		}
		uc.logger.Error("ComputeRate: failed to compute quote: %v", err)
		return nil, fmt.Errorf("%w: failed to compute quote: %v", ErrInternal, err)
	}

	breakdown := make([]NightPrice, 0, len(quote.Breakdown))
	for _, night := range quote.Breakdown {
		breakdown = append(breakdown, NightPrice{
			Date:        night.Date.String(),
			Amount:      night.Amount.StringFixed(2),
			Kind:        string(night.Kind),
			Description: night.Description,
		})
	}

	uc.logger.Info("ComputeRate: %s..%s, guests=%d, total=%s",
		checkIn, checkOut, req.Guests, quote.Total.StringFixed(2))

	return &Response{
		CheckinDate:  checkIn.String(),
		CheckoutDate: checkOut.String(),
		Nights:       quote.Nights,
		Guests:       req.Guests,
		Breakdown:    breakdown,
		Total:        quote.Total.StringFixed(2),
	}, nil
}

// validateRequest валидирует запрос и разбирает даты
func validateRequest(req *Request) (types.Date, types.Date, error) {
	var zero types.Date

	if req.CheckinDate == "" || req.CheckoutDate == "" {
		return zero, zero, fmt.Errorf("%w: checkinDate and checkoutDate are required", ErrInvalidInput)
	}

	checkIn, err := types.NewDateFromString(req.CheckinDate)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: invalid checkinDate: %v", ErrInvalidInput, err)
	}
	checkOut, err := types.NewDateFromString(req.CheckoutDate)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: invalid checkoutDate: %v", ErrInvalidInput, err)
	}

	if !checkIn.Before(checkOut) {
		return zero, zero, fmt.Errorf("%w: checkoutDate must be after checkinDate", ErrInvalidInput)
	}

	if req.Guests < domain.MinGuests || req.Guests > domain.MaxGuests {
		return zero, zero, fmt.Errorf("%w: guests must be between %d and %d",
			ErrInvalidInput, domain.MinGuests, domain.MaxGuests)
	}

	return checkIn, checkOut, nil
}
