package import_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peppertree17/booking-service/internal/domain"
	bookingRepo "github.com/peppertree17/booking-service/internal/infra/storage/booking"
)

const feedWithTwoEvents = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Airbnb Inc//Hosting Calendar 1.0//EN
BEGIN:VEVENT
UID:abc-123@airbnb.com
DTSTART;VALUE=DATE:20250810
DTEND;VALUE=DATE:20250814
SUMMARY:Reserved
END:VEVENT
BEGIN:VEVENT
UID:def-456@airbnb.com
DTSTART;VALUE=DATE:20250901
DTEND;VALUE=DATE:20250903
SUMMARY:Airbnb (Not available)
END:VEVENT
END:VCALENDAR
`

type fakeBookingRepo struct {
	byUID  map[string]*domain.Booking
	nextID int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byUID: make(map[string]*domain.Booking), nextID: 1}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.ExternalUID != nil {
		if _, ok := f.byUID[*booking.ExternalUID]; ok {
			return nil, bookingRepo.ErrDuplicateExternalUID
		}
	}
	booking.ID = f.nextID
	f.nextID++
	if booking.ExternalUID != nil {
		f.byUID[*booking.ExternalUID] = booking
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetByExternalUID(_ context.Context, uid string) (*domain.Booking, error) {
	if b, ok := f.byUID[uid]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type fakeFetcher struct {
	data string
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return f.data, f.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo, fetcher *fakeFetcher) *UseCase {
	uc := NewUseCase(repo, fetcher, nopLogger{})
	uc.SetTimeProvider(fixedTime{t: time.Date(2025, time.August, 1, 8, 0, 0, 0, time.UTC)})
	return uc
}

func validRequest() *Request {
	return &Request{URL: "https://airbnb.example.com/calendar.ics", Platform: "airbnb"}
}

func TestExecute_ImportsPendingBookings(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(repo, &fakeFetcher{data: feedWithTwoEvents})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 0, resp.Skipped)

	imported := repo.byUID["abc-123@airbnb.com"]
	require.NotNil(t, imported)
	assert.Equal(t, domain.StatusPending, imported.Status)
	assert.Equal(t, domain.PaymentPending, imported.PaymentStatus)
	assert.Equal(t, "2025-08-10", imported.CheckIn.String())
	assert.Equal(t, "2025-08-14", imported.CheckOut.String())
	assert.Equal(t, domain.BookingSource("airbnb"), imported.Source)
	assert.Equal(t, domain.MaxGuests, imported.Guests)
	assert.Equal(t, "Reserved", imported.GuestName)
	require.Len(t, imported.StatusHistory, 1)
	assert.Equal(t, "import:airbnb", imported.StatusHistory[0].Actor)
}

func TestExecute_SecondImportIsIdempotent(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(repo, &fakeFetcher{data: feedWithTwoEvents})

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, repo.byUID, 2)
}

func TestExecute_FetchError(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), &fakeFetcher{err: assert.AnError})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestExecute_ParseError(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), &fakeFetcher{data: "not an ics feed"})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), &fakeFetcher{data: feedWithTwoEvents})

	cases := []*Request{
		{URL: "", Platform: "airbnb"},
		{URL: "ftp://example.com/feed.ics", Platform: "airbnb"},
		{URL: "not a url", Platform: "airbnb"},
		{URL: "https://example.com/feed.ics", Platform: "  "},
	}

	for _, req := range cases {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
	}
}
