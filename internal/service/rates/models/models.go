package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

var (
	// ErrInvalidKind возвращается при некорректном виде тарифа
	ErrInvalidKind = errors.New("invalid rate kind")
)

// Request модели

// UpsertRateRequest запрос на создание тарифа.
// Для базового тарифа окно дат отсутствует; создание нового базового
// тарифа на то же число гостей деактивирует предыдущий.
type UpsertRateRequest struct {
	Kind           string
	Guests         int
	AmountPerNight decimal.Decimal
	StartDate      *types.Date
	EndDate        *types.Date
	Description    *string
	Actor          string
}

// ListRatesRequest запрос на получение тарифов
type ListRatesRequest struct {
	Kind       *string
	Guests     *int
	ActiveOnly bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRatesRequest) ToDomainFilter() (domain.RatesFilter, error) {
	filter := domain.RatesFilter{
		Guests:     r.Guests,
		ActiveOnly: r.ActiveOnly,
	}

	if r.Kind != nil {
		kind := domain.RateKind(*r.Kind)
		if kind != domain.RateBase && kind != domain.RateSpecial {
			return filter, ErrInvalidKind
		}
		filter.Kind = &kind
	}

	return filter, nil
}

// Response модели

// RateResponse ответ с данными тарифа
type RateResponse struct {
	ID             int64   `json:"id"`
	Kind           string  `json:"kind"`
	Guests         int     `json:"guests"`
	AmountPerNight string  `json:"amountPerNight"`
	StartDate      *string `json:"startDate,omitempty"`
	EndDate        *string `json:"endDate,omitempty"`
	Description    *string `json:"description,omitempty"`
	Active         bool    `json:"active"`

	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RateListResponse ответ со списком тарифов
type RateListResponse struct {
	Rates []RateResponse `json:"rates"`
}

// Методы конвертации

// FromDomainRate конвертирует domain модель в DTO
func FromDomainRate(r *domain.Rate) *RateResponse {
	if r == nil {
		return nil
	}

	resp := &RateResponse{
		ID:             r.ID,
		Kind:           string(r.Kind),
		Guests:         r.Guests,
		AmountPerNight: r.AmountPerNight.StringFixed(2),
		Description:    r.Description,
		Active:         r.Active,
		CreatedBy:      r.CreatedBy,
		UpdatedBy:      r.UpdatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if r.StartDate != nil {
		s := r.StartDate.String()
		resp.StartDate = &s
	}
	if r.EndDate != nil {
		s := r.EndDate.String()
		resp.EndDate = &s
	}

	return resp
}

// FromDomainRateList конвертирует список domain моделей в DTO
func FromDomainRateList(rates []*domain.Rate) *RateListResponse {
	resp := &RateListResponse{
		Rates: make([]RateResponse, 0, len(rates)),
	}

	for _, rate := range rates {
		if r := FromDomainRate(rate); r != nil {
			resp.Rates = append(resp.Rates, *r)
		}
	}

	return resp
}
