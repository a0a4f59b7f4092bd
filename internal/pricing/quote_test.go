package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/ptr"
	"github.com/peppertree17/booking-service/pkg/types"
)

func baseRate(amount string) *domain.Rate {
	return &domain.Rate{
		ID:             1,
		Kind:           domain.RateBase,
		Guests:         2,
		AmountPerNight: decimal.RequireFromString(amount),
		Active:         true,
	}
}

func specialRate(id int64, amount string, start, end types.Date) *domain.Rate {
	return &domain.Rate{
		ID:             id,
		Kind:           domain.RateSpecial,
		Guests:         2,
		AmountPerNight: decimal.RequireFromString(amount),
		StartDate:      &start,
		EndDate:        &end,
		Description:    ptr.Ptr("Festive season"),
		Active:         true,
	}
}

func TestComputeQuote_SpecialOverridesBase(t *testing.T) {
	base := baseRate("950.00")
	special := specialRate(2, "800.00",
		types.NewDate(2025, time.December, 20),
		types.NewDate(2025, time.December, 24),
	)

	quote, err := ComputeQuote(
		types.NewDate(2025, time.December, 19),
		types.NewDate(2025, time.December, 22),
		base,
		[]*domain.Rate{special},
	)
	require.NoError(t, err)

	require.Equal(t, 3, quote.Nights)
	require.Len(t, quote.Breakdown, 3)

	assert.Equal(t, "2025-12-19", quote.Breakdown[0].Date.String())
	assert.True(t, quote.Breakdown[0].Amount.Equal(decimal.RequireFromString("950.00")))
	assert.Equal(t, domain.RateBase, quote.Breakdown[0].Kind)

	assert.Equal(t, "2025-12-20", quote.Breakdown[1].Date.String())
	assert.True(t, quote.Breakdown[1].Amount.Equal(decimal.RequireFromString("800.00")))
	assert.Equal(t, domain.RateSpecial, quote.Breakdown[1].Kind)

	assert.Equal(t, "2025-12-21", quote.Breakdown[2].Date.String())
	assert.True(t, quote.Breakdown[2].Amount.Equal(decimal.RequireFromString("800.00")))

	assert.True(t, quote.Total.Equal(decimal.RequireFromString("2550.00")),
		"expected total 2550.00, got %s", quote.Total)
}

func TestComputeQuote_BaseOnly(t *testing.T) {
	quote, err := ComputeQuote(
		types.NewDate(2025, time.July, 1),
		types.NewDate(2025, time.July, 4),
		baseRate("1200.50"),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, 3, quote.Nights)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("3601.50")))
}

func TestComputeQuote_SpecialWindowInclusive(t *testing.T) {
	// Окно спецтарифа инклюзивное: ночь на его последний день еще покрыта
	special := specialRate(7, "700.00",
		types.NewDate(2025, time.March, 10),
		types.NewDate(2025, time.March, 12),
	)

	quote, err := ComputeQuote(
		types.NewDate(2025, time.March, 12),
		types.NewDate(2025, time.March, 14),
		baseRate("900.00"),
		[]*domain.Rate{special},
	)
	require.NoError(t, err)

	assert.Equal(t, domain.RateSpecial, quote.Breakdown[0].Kind)
	assert.Equal(t, domain.RateBase, quote.Breakdown[1].Kind)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("1600.00")))
}

func TestComputeQuote_NoRateAvailable(t *testing.T) {
	_, err := ComputeQuote(
		types.NewDate(2025, time.May, 1),
		types.NewDate(2025, time.May, 3),
		nil,
		nil,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRateAvailable)
}

func TestComputeQuote_SpecialOnlyGapFails(t *testing.T) {
	// Спецтариф покрывает часть ночей, базового нет: расчет невозможен
	special := specialRate(3, "800.00",
		types.NewDate(2025, time.December, 20),
		types.NewDate(2025, time.December, 24),
	)

	_, err := ComputeQuote(
		types.NewDate(2025, time.December, 19),
		types.NewDate(2025, time.December, 22),
		nil,
		[]*domain.Rate{special},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRateAvailable)
}

func TestComputeQuote_ConflictingSpecials(t *testing.T) {
	s1 := specialRate(4, "800.00",
		types.NewDate(2025, time.December, 18),
		types.NewDate(2025, time.December, 21),
	)
	s2 := specialRate(5, "850.00",
		types.NewDate(2025, time.December, 20),
		types.NewDate(2025, time.December, 26),
	)

	_, err := ComputeQuote(
		types.NewDate(2025, time.December, 19),
		types.NewDate(2025, time.December, 22),
		baseRate("950.00"),
		[]*domain.Rate{s1, s2},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateConflict)
}

func TestComputeQuote_InvalidRange(t *testing.T) {
	_, err := ComputeQuote(
		types.NewDate(2025, time.July, 4),
		types.NewDate(2025, time.July, 1),
		baseRate("950.00"),
		nil,
	)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ComputeQuote(
		types.NewDate(2025, time.July, 4),
		types.NewDate(2025, time.July, 4),
		baseRate("950.00"),
		nil,
	)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
