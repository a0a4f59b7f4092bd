package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/peppertree17/booking-service/pkg/types"
)

func TestBookingOverlaps_HalfOpen(t *testing.T) {
	b := &Booking{
		CheckIn:  types.NewDate(2025, time.July, 1),
		CheckOut: types.NewDate(2025, time.July, 4),
	}

	// Выезд 4-го освобождает день: заезд 4-го не конфликтует
	assert.False(t, b.Overlaps(
		types.NewDate(2025, time.July, 4),
		types.NewDate(2025, time.July, 7),
	))

	// Заезд 1-го при выезде другого гостя 1-го тоже не конфликтует
	assert.False(t, b.Overlaps(
		types.NewDate(2025, time.June, 28),
		types.NewDate(2025, time.July, 1),
	))

	// Любое пересечение хотя бы одной ночи конфликтует
	assert.True(t, b.Overlaps(
		types.NewDate(2025, time.July, 3),
		types.NewDate(2025, time.July, 5),
	))
	assert.True(t, b.Overlaps(
		types.NewDate(2025, time.June, 30),
		types.NewDate(2025, time.July, 2),
	))
	assert.True(t, b.Overlaps(
		types.NewDate(2025, time.July, 1),
		types.NewDate(2025, time.July, 4),
	))
}

func TestBookingIsBlocking(t *testing.T) {
	for _, s := range BlockingStatuses {
		b := &Booking{Status: s}
		assert.True(t, b.IsBlocking(), "status %s", s)
	}
	for _, s := range NonBlockingStatuses {
		b := &Booking{Status: s}
		assert.False(t, b.IsBlocking(), "status %s", s)
	}
}

func TestBookingNights(t *testing.T) {
	b := &Booking{
		CheckIn:  types.NewDate(2025, time.December, 19),
		CheckOut: types.NewDate(2025, time.December, 22),
	}
	assert.Equal(t, 3, b.Nights())
}

func TestStatusHistoryAppend(t *testing.T) {
	now := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

	var h StatusHistory
	h = h.AppendStatus(StatusPending, "system", now, nil)
	h = h.AppendStatus(StatusApproved, "owner@example.com", now.Add(time.Hour), nil)
	h = h.AppendPayment(PaymentPaid, "owner@example.com", now.Add(2*time.Hour), nil)

	assert.Len(t, h, 3)
	assert.Equal(t, "status", h[0].Type)
	assert.Equal(t, StatusPending, *h[0].Status)
	assert.Equal(t, StatusApproved, *h[1].Status)
	assert.Equal(t, "payment", h[2].Type)
	assert.Equal(t, PaymentPaid, *h[2].PaymentStatus)
	assert.Nil(t, h[2].Status)
}

func TestRateAppliesOn(t *testing.T) {
	start := types.NewDate(2025, time.December, 20)
	end := types.NewDate(2025, time.December, 24)
	special := &Rate{Kind: RateSpecial, StartDate: &start, EndDate: &end}

	assert.False(t, special.AppliesOn(types.NewDate(2025, time.December, 19)))
	assert.True(t, special.AppliesOn(types.NewDate(2025, time.December, 20)))
	assert.True(t, special.AppliesOn(types.NewDate(2025, time.December, 24)))
	assert.False(t, special.AppliesOn(types.NewDate(2025, time.December, 25)))

	base := &Rate{Kind: RateBase}
	assert.True(t, base.AppliesOn(types.NewDate(2030, time.January, 1)))
}

func TestRateWindowOverlaps(t *testing.T) {
	start := types.NewDate(2025, time.December, 20)
	end := types.NewDate(2025, time.December, 24)
	r := &Rate{Kind: RateSpecial, StartDate: &start, EndDate: &end}

	// Соприкосновение краями окон считается пересечением
	assert.True(t, r.WindowOverlaps(
		types.NewDate(2025, time.December, 24),
		types.NewDate(2025, time.December, 30),
	))
	assert.True(t, r.WindowOverlaps(
		types.NewDate(2025, time.December, 15),
		types.NewDate(2025, time.December, 20),
	))
	assert.False(t, r.WindowOverlaps(
		types.NewDate(2025, time.December, 25),
		types.NewDate(2025, time.December, 30),
	))
	assert.False(t, r.WindowOverlaps(
		types.NewDate(2025, time.December, 1),
		types.NewDate(2025, time.December, 19),
	))
}
