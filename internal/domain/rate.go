package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/pkg/types"
)

// RateKind distinguishes always-on base rates from promotional specials
type RateKind string

const (
	RateBase    RateKind = "base"
	RateSpecial RateKind = "special"
)

// Rate is a nightly price record. Base rates have no date window and act
// as the fallback; special rates apply only within the inclusive window
// [StartDate, EndDate] and override the base for the nights they cover.
//
// Rates are never hard-deleted: superseded or removed rates are kept
// with Active=false for audit history.
type Rate struct {
	ID             int64
	Kind           RateKind
	Guests         int
	AmountPerNight decimal.Decimal
	StartDate      *types.Date
	EndDate        *types.Date
	Description    *string
	Active         bool

	CreatedBy *string
	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesOn reports whether the rate covers the given date.
// Base rates cover every date; specials cover their inclusive window.
func (r *Rate) AppliesOn(d types.Date) bool {
	if r.Kind == RateBase {
		return true
	}
	if r.StartDate == nil || r.EndDate == nil {
		return false
	}
	return !d.Before(*r.StartDate) && !d.After(*r.EndDate)
}

// WindowOverlaps reports whether two inclusive date windows intersect:
// overlap iff start <= r.EndDate && end >= r.StartDate
func (r *Rate) WindowOverlaps(start, end types.Date) bool {
	if r.StartDate == nil || r.EndDate == nil {
		return false
	}
	return !start.After(*r.EndDate) && !end.Before(*r.StartDate)
}

// RatesFilter фильтр для выборки тарифов
type RatesFilter struct {
	Kind       *RateKind
	Guests     *int
	ActiveOnly bool
}
