package compute_rate

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peppertree17/booking-service/internal/domain"
	rateRepo "github.com/peppertree17/booking-service/internal/infra/storage/rate"
	"github.com/peppertree17/booking-service/pkg/types"
)

type fakeRateRepo struct {
	base     map[int]*domain.Rate
	specials []*domain.Rate
}

func (f *fakeRateRepo) GetActiveBase(_ context.Context, guests int) (*domain.Rate, error) {
	if r, ok := f.base[guests]; ok {
		return r, nil
	}
	return nil, rateRepo.ErrRateNotFound
}

func (f *fakeRateRepo) FindSpecialsInRange(_ context.Context, guests int, from, to types.Date) ([]*domain.Rate, error) {
	out := make([]*domain.Rate, 0)
	for _, r := range f.specials {
		if r.Guests == guests && r.Active && r.WindowOverlaps(from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRates() *fakeRateRepo {
	start := types.NewDate(2025, time.December, 20)
	end := types.NewDate(2025, time.December, 24)
	return &fakeRateRepo{
		base: map[int]*domain.Rate{
			2: {
				ID: 1, Kind: domain.RateBase, Guests: 2,
				AmountPerNight: decimal.RequireFromString("950.00"), Active: true,
			},
		},
		specials: []*domain.Rate{
			{
				ID: 2, Kind: domain.RateSpecial, Guests: 2,
				AmountPerNight: decimal.RequireFromString("800.00"),
				StartDate:      &start, EndDate: &end, Active: true,
			},
		},
	}
}

func TestExecute_MixedBaseAndSpecial(t *testing.T) {
	uc := NewUseCase(testRates(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		CheckinDate:  "2025-12-19",
		CheckoutDate: "2025-12-22",
		Guests:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, "2550.00", resp.Total)
	require.Len(t, resp.Breakdown, 3)
	assert.Equal(t, "950.00", resp.Breakdown[0].Amount)
	assert.Equal(t, "base", resp.Breakdown[0].Kind)
	assert.Equal(t, "800.00", resp.Breakdown[1].Amount)
	assert.Equal(t, "special", resp.Breakdown[1].Kind)
}

func TestExecute_NoRateForGuestCount(t *testing.T) {
	uc := NewUseCase(testRates(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		CheckinDate:  "2025-12-19",
		CheckoutDate: "2025-12-22",
		Guests:       1,
	})
	assert.ErrorIs(t, err, ErrNoRateAvailable)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(testRates(), nopLogger{})

	cases := []Request{
		{CheckinDate: "", CheckoutDate: "2025-12-22", Guests: 2},
		{CheckinDate: "2025-12-19", CheckoutDate: "", Guests: 2},
		{CheckinDate: "19-12-2025", CheckoutDate: "2025-12-22", Guests: 2},
		{CheckinDate: "2025-12-22", CheckoutDate: "2025-12-19", Guests: 2},
		{CheckinDate: "2025-12-19", CheckoutDate: "2025-12-19", Guests: 2},
		{CheckinDate: "2025-12-19", CheckoutDate: "2025-12-22", Guests: 0},
		{CheckinDate: "2025-12-19", CheckoutDate: "2025-12-22", Guests: 5},
	}

	for _, req := range cases {
		_, err := uc.Execute(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
	}
}
