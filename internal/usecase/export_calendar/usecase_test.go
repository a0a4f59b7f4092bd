package export_calendar

import (
	"context"
	"strings"
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

func (f *fakeBookingRepo) ListExportable(_ context.Context) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		for _, s := range domain.ExportableStatuses {
			if b.Status == s {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig() Config {
	return Config{
		CalendarName: "17 Peppertree Lane",
		Description:  "Availability feed",
		Timezone:     "Africa/Johannesburg",
		UIDDomain:    "17peppertree.example.com",
	}
}

func TestExecute_OnlyApprovedAndCompletedExported(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID:       1,
			CheckIn:  types.NewDate(2025, time.July, 1),
			CheckOut: types.NewDate(2025, time.July, 4),
			Guests:   2,
			Status:   domain.StatusApproved,
			UpdatedAt: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:       2,
			CheckIn:  types.NewDate(2025, time.July, 10),
			CheckOut: types.NewDate(2025, time.July, 12),
			Guests:   1,
			Status:   domain.StatusPending,
			UpdatedAt: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:       3,
			CheckIn:  types.NewDate(2025, time.May, 1),
			CheckOut: types.NewDate(2025, time.May, 5),
			Guests:   2,
			Status:   domain.StatusCompleted,
			UpdatedAt: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
		},
	}}

	uc := NewUseCase(repo, testConfig(), nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, resp.ICS, "BEGIN:VCALENDAR")
	assert.Contains(t, resp.ICS, "X-WR-CALNAME:17 Peppertree Lane")
	assert.Contains(t, resp.ICS, "booking-1@17peppertree.example.com")
	assert.Contains(t, resp.ICS, "booking-3@17peppertree.example.com")
	assert.NotContains(t, resp.ICS, "booking-2@", "pending bookings must not be exported")
	assert.Equal(t, 2, strings.Count(resp.ICS, "BEGIN:VEVENT"))
}

func TestExecute_NoGuestDataInFeed(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID:        1,
			CheckIn:   types.NewDate(2025, time.July, 1),
			CheckOut:  types.NewDate(2025, time.July, 4),
			Guests:    2,
			GuestName: "Thandi Nkosi",
			Email:     "thandi@example.com",
			Status:    domain.StatusApproved,
			UpdatedAt: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
		},
	}}

	uc := NewUseCase(repo, testConfig(), nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, resp.ICS, "Thandi")
	assert.NotContains(t, resp.ICS, "thandi@example.com")
	assert.Contains(t, resp.ICS, "Booked (2 guests)")
}

func TestExecute_EmptyCalendar(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, testConfig(), nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, resp.ICS, "BEGIN:VCALENDAR")
	assert.NotContains(t, resp.ICS, "BEGIN:VEVENT")
}
