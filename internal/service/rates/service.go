package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/domain"
	rateRepo "github.com/peppertree17/booking-service/internal/infra/storage/rate"
	"github.com/peppertree17/booking-service/internal/service/rates/models"
	"github.com/peppertree17/booking-service/pkg/ptr"
)

// Service сервис управления тарифами
type Service struct {
	rateRepo  RateRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(
	rateRepo RateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		rateRepo:  rateRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Upsert создает тариф.
// Новый базовый тариф атомарно деактивирует предыдущий базовый тариф
// того же числа гостей: между деактивацией и созданием нет момента,
// когда у гостей нет цены. Спецтариф проверяется на пересечение окон
// с активными спецтарифами того же числа гостей.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRateRequest) (*models.RateResponse, error) {
	s.logger.Info("Upsert: kind=%s, guests=%d, amount=%s by %s",
		req.Kind, req.Guests, req.AmountPerNight, req.Actor)

	kind, err := validateUpsertRequest(req)
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	rate := &domain.Rate{
		Kind:           kind,
		Guests:         req.Guests,
		AmountPerNight: req.AmountPerNight,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Description:    req.Description,
		Active:         true,
		CreatedBy:      ptr.Ptr(req.Actor),
		UpdatedBy:      ptr.Ptr(req.Actor),
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if kind == domain.RateBase {
			// 1. Деактивируем предыдущий базовый тариф, если он есть
			previous, err := s.rateRepo.GetActiveBase(txCtx, req.Guests)
			if err != nil && !errors.Is(err, rateRepo.ErrRateNotFound) {
				s.logger.Error("Upsert: failed to get active base rate: %v", err)
				return fmt.Errorf("%w: failed to get active base rate: %v", ErrInternal, err)
			}
			if previous != nil {
				if err := s.rateRepo.Deactivate(txCtx, previous.ID, ptr.Ptr(req.Actor)); err != nil {
					s.logger.Error("Upsert: failed to supersede base rate id=%d: %v", previous.ID, err)
					return fmt.Errorf("%w: failed to supersede base rate: %v", ErrInternal, err)
				}
				s.logger.Info("Upsert: superseded base rate id=%d for guests=%d", previous.ID, req.Guests)
			}
		} else {
			// 1. Проверяем пересечение окон с активными спецтарифами
			overlapping, err := s.rateRepo.FindOverlappingSpecials(txCtx, req.Guests, *req.StartDate, *req.EndDate, nil)
			if err != nil {
				s.logger.Error("Upsert: failed to check overlapping specials: %v", err)
				return fmt.Errorf("%w: failed to check overlapping specials: %v", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				s.logger.Warn("Upsert: window %s..%s overlaps rate id=%d",
					req.StartDate, req.EndDate, overlapping[0].ID)
				return fmt.Errorf("%w: overlaps rate id=%d", ErrOverlappingRate, overlapping[0].ID)
			}
		}

		// 2. Создаем тариф
		created, err := s.rateRepo.Create(txCtx, rate)
		if err != nil {
			s.logger.Error("Upsert: failed to create rate: %v", err)
			return fmt.Errorf("%w: failed to create rate: %v", ErrInternal, err)
		}
		rate = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Upsert: successfully created rate id=%d", rate.ID)
	return models.FromDomainRate(rate), nil
}

// Deactivate помечает тариф неактивным.
// Единственный активный базовый тариф для числа гостей деактивировать
// нельзя: без него невозможен ни один расчет стоимости.
func (s *Service) Deactivate(ctx context.Context, id int64, actor string) error {
	s.logger.Info("Deactivate: rate id=%d by %s", id, actor)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		rate, err := s.rateRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, rateRepo.ErrRateNotFound) {
				s.logger.Warn("Deactivate: rate id=%d not found", id)
				return ErrRateNotFound
			}
			s.logger.Error("Deactivate: repository error for rate id=%d: %v", id, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		if !rate.Active {
			s.logger.Warn("Deactivate: rate id=%d is already inactive", id)
			return ErrRateNotFound
		}

		if rate.Kind == domain.RateBase {
			remaining, err := s.rateRepo.CountActiveBase(txCtx, rate.Guests, &id)
			if err != nil {
				s.logger.Error("Deactivate: failed to count base rates: %v", err)
				return fmt.Errorf("%w: failed to count base rates: %v", ErrInternal, err)
			}
			if remaining == 0 {
				s.logger.Warn("Deactivate: rate id=%d is the last base rate for guests=%d", id, rate.Guests)
				return ErrLastBaseRate
			}
		}

		if err := s.rateRepo.Deactivate(txCtx, id, ptr.Ptr(actor)); err != nil {
			if errors.Is(err, rateRepo.ErrRateNotFound) {
				return ErrRateNotFound
			}
			s.logger.Error("Deactivate: failed to deactivate rate id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to deactivate rate: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Deactivate: successfully deactivated rate id=%d", id)
	return nil
}

// List получает тарифы с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListRatesRequest) (*models.RateListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rates, err := s.rateRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d rates", len(rates))
	return models.FromDomainRateList(rates), nil
}

// validateUpsertRequest валидирует запрос и возвращает вид тарифа
func validateUpsertRequest(req *models.UpsertRateRequest) (domain.RateKind, error) {
	kind := domain.RateKind(req.Kind)
	if kind != domain.RateBase && kind != domain.RateSpecial {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, req.Kind)
	}

	if req.Guests < domain.MinGuests || req.Guests > domain.MaxGuests {
		return "", fmt.Errorf("%w: guests must be between %d and %d", ErrInvalidInput, domain.MinGuests, domain.MaxGuests)
	}

	if !req.AmountPerNight.GreaterThan(decimal.Zero) {
		return "", fmt.Errorf("%w: amountPerNight must be positive", ErrInvalidInput)
	}

	switch kind {
	case domain.RateBase:
		if req.StartDate != nil || req.EndDate != nil {
			return "", fmt.Errorf("%w: base rate must not have a date window", ErrInvalidInput)
		}
	case domain.RateSpecial:
		if req.StartDate == nil || req.EndDate == nil {
			return "", fmt.Errorf("%w: special rate requires startDate and endDate", ErrInvalidInput)
		}
		if req.EndDate.Before(*req.StartDate) {
			return "", fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
		}
	}

	if req.Actor == "" {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	return kind, nil
}
