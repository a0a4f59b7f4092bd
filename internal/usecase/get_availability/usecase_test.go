package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) FindBlockingInRange(_ context.Context, checkIn, checkOut types.Date, _ *int64) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.IsBlocking() && b.Overlaps(checkIn, checkOut) {
			out = append(out, b)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func booking(status domain.BookingStatus, checkIn, checkOut types.Date) *domain.Booking {
	return &domain.Booking{CheckIn: checkIn, CheckOut: checkOut, Status: status}
}

func TestExecute_CheckoutDayIsFree(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(domain.StatusApproved,
			types.NewDate(2025, time.July, 1),
			types.NewDate(2025, time.July, 4)),
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 7})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-07-01", "2025-07-02", "2025-07-03"}, resp.OccupiedDates)
}

func TestExecute_CancelledAndRejectedFreeDates(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(domain.StatusCancelled,
			types.NewDate(2025, time.July, 10),
			types.NewDate(2025, time.July, 12)),
		booking(domain.StatusRejected,
			types.NewDate(2025, time.July, 20),
			types.NewDate(2025, time.July, 22)),
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 7})
	require.NoError(t, err)
	assert.Empty(t, resp.OccupiedDates)
}

func TestExecute_BookingSpanningMonthBoundary(t *testing.T) {
	// Заезд в июне, выезд в июле: в июльской выборке только хвост
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(domain.StatusApproved,
			types.NewDate(2025, time.June, 29),
			types.NewDate(2025, time.July, 3)),
		booking(domain.StatusPending,
			types.NewDate(2025, time.July, 30),
			types.NewDate(2025, time.August, 2)),
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 7})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-01", "2025-07-02", "2025-07-30", "2025-07-31"}, resp.OccupiedDates)
}

func TestExecute_OverlappingBookingsDeduplicated(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(domain.StatusApproved,
			types.NewDate(2025, time.July, 1),
			types.NewDate(2025, time.July, 3)),
		booking(domain.StatusPending,
			types.NewDate(2025, time.July, 2),
			types.NewDate(2025, time.July, 5)),
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 7})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-01", "2025-07-02", "2025-07-03", "2025-07-04"}, resp.OccupiedDates)
}

func TestExecute_InvalidMonth(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Year: 2025, Month: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Year: 2025, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Year: 1800, Month: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
