// Package pricing считает стоимость проживания по ночам.
//
// Пакет чистый: не ходит в БД и не знает про транспорты. Базовый тариф
// и пересекающие диапазон спецтарифы загружает вызывающий, пакет только
// обходит ночи полуинтервала [checkIn, checkOut) и применяет приоритет
// "спецтариф поверх базового".
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

// Night цена одной ночи проживания
type Night struct {
	Date        types.Date
	Amount      decimal.Decimal
	Kind        domain.RateKind
	Description *string
}

// Quote стоимость проживания целиком: итог фиксируется в бронировании
// как снимок и при последующих изменениях тарифов не пересчитывается
type Quote struct {
	Nights    int
	Breakdown []Night
	Total     decimal.Decimal
}

// ComputeQuote считает стоимость полуинтервала [checkIn, checkOut).
// base может быть nil, если базовый тариф не настроен; specials содержит
// только активные спецтарифы нужного числа гостей.
//
// Для каждой ночи: покрывающий спецтариф побеждает базовый; ночь без
// единого тарифа делает весь расчет невозможным (ErrNoRateAvailable).
func ComputeQuote(checkIn, checkOut types.Date, base *domain.Rate, specials []*domain.Rate) (*Quote, error) {
	if !checkIn.Before(checkOut) {
		return nil, fmt.Errorf("%w: %s .. %s", ErrInvalidRange, checkIn, checkOut)
	}

	nights := checkIn.DaysUntil(checkOut)
	quote := &Quote{
		Nights:    nights,
		Breakdown: make([]Night, 0, nights),
		Total:     decimal.Zero,
	}

	for d := checkIn; d.Before(checkOut); d = d.AddDays(1) {
		night, err := priceNight(d, base, specials)
		if err != nil {
			return nil, err
		}
		quote.Breakdown = append(quote.Breakdown, *night)
		quote.Total = quote.Total.Add(night.Amount)
	}

	return quote, nil
}

// priceNight выбирает тариф для одной ночи
func priceNight(d types.Date, base *domain.Rate, specials []*domain.Rate) (*Night, error) {
	var covering *domain.Rate
	for _, s := range specials {
		if !s.AppliesOn(d) {
			continue
		}
		if covering != nil {
			return nil, fmt.Errorf("%w: %s covered by rates %d and %d", ErrRateConflict, d, covering.ID, s.ID)
		}
		covering = s
	}

	if covering != nil {
		return &Night{
			Date:        d,
			Amount:      covering.AmountPerNight,
			Kind:        domain.RateSpecial,
			Description: covering.Description,
		}, nil
	}

	if base == nil {
		return nil, fmt.Errorf("%w: no rate covers %s", ErrNoRateAvailable, d)
	}

	return &Night{
		Date:        d,
		Amount:      base.AmountPerNight,
		Kind:        domain.RateBase,
		Description: base.Description,
	}, nil
}
