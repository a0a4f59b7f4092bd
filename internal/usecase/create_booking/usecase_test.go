package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peppertree17/booking-service/internal/domain"
	rateRepo "github.com/peppertree17/booking-service/internal/infra/storage/rate"
	"github.com/peppertree17/booking-service/pkg/ptr"
	"github.com/peppertree17/booking-service/pkg/types"
)

// fakeBookingRepo потокобезопасный репозиторий в памяти, имитирующий
// проверку конфликтов и constraint БД под общим мьютексом
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	nextID := int64(1)
	for _, b := range bookings {
		if b.ID >= nextID {
			nextID = b.ID + 1
		}
	}
	return &fakeBookingRepo{bookings: bookings, nextID: nextID}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.ID = f.nextID
	f.nextID++
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingRepo) FindBlockingInRange(_ context.Context, checkIn, checkOut types.Date, excludeID *int64) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.IsBlocking() && b.Overlaps(checkIn, checkOut) {
			out = append(out, b)
		}
	}
	return out, nil
}

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

type fakeNotifier struct {
	mu       sync.Mutex
	guest    []int64
	owner    []int64
}

func (f *fakeNotifier) SendBookingReceived(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guest = append(f.guest, b.ID)
	return nil
}

func (f *fakeNotifier) SendOwnerNotification(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owner = append(f.owner, b.ID)
	return nil
}

// fakeTxManager сериализует "транзакции" глобальным мьютексом: тот же
// эффект, которого на Postgres добиваются serializable-уровнем и FOR UPDATE
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func defaultRates() *fakeRateRepo {
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

func newTestUseCase(bookings *fakeBookingRepo, rates *fakeRateRepo, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(bookings, rates, notifier, &fakeTxManager{}, nopLogger{})
	uc.SetTimeProvider(fixedTime{t: testNow})
	return uc
}

func validRequest() *Request {
	return &Request{
		CheckinDate:  "2025-12-19",
		CheckoutDate: "2025-12-22",
		Guests:       2,
		GuestName:    "Thandi Nkosi",
		Email:        "thandi@example.com",
		Phone:        "+27 82 000 0000",
	}
}

func TestExecute_SnapshotsQuoteAtCreation(t *testing.T) {
	repo := newFakeBookingRepo()
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, defaultRates(), notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 3, resp.Nights)
	// 19-го базовый 950, 20-го и 21-го спецтариф 800
	assert.Equal(t, "2550.00", resp.ComputedTotal)
	require.Len(t, resp.Breakdown, 3)
	assert.Equal(t, "base", resp.Breakdown[0].Kind)
	assert.Equal(t, "950.00", resp.Breakdown[0].Amount)
	assert.Equal(t, "special", resp.Breakdown[1].Kind)
	assert.Equal(t, "special", resp.Breakdown[2].Kind)

	// Обе нотификации ушли после коммита
	assert.Equal(t, []int64{resp.ID}, notifier.guest)
	assert.Equal(t, []int64{resp.ID}, notifier.owner)

	// История начинается с pending
	stored := repo.bookings[0]
	require.Len(t, stored.StatusHistory, 1)
	assert.Equal(t, domain.StatusPending, *stored.StatusHistory[0].Status)
}

func TestExecute_DateConflict(t *testing.T) {
	existing := &domain.Booking{
		ID:       10,
		CheckIn:  types.NewDate(2025, time.December, 20),
		CheckOut: types.NewDate(2025, time.December, 23),
		Status:   domain.StatusApproved,
	}
	uc := newTestUseCase(newFakeBookingRepo(existing), defaultRates(), &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateConflict)
}

func TestExecute_HalfOpenBoundary(t *testing.T) {
	// Выезд 22-го и заезд 22-го не конфликтуют
	existing := &domain.Booking{
		ID:       10,
		CheckIn:  types.NewDate(2025, time.December, 16),
		CheckOut: types.NewDate(2025, time.December, 19),
		Status:   domain.StatusApproved,
	}
	uc := newTestUseCase(newFakeBookingRepo(existing), defaultRates(), &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "2025-12-19", resp.CheckinDate)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	existing := &domain.Booking{
		ID:       10,
		CheckIn:  types.NewDate(2025, time.December, 19),
		CheckOut: types.NewDate(2025, time.December, 22),
		Status:   domain.StatusCancelled,
	}
	uc := newTestUseCase(newFakeBookingRepo(existing), defaultRates(), &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_NoRateAvailable(t *testing.T) {
	rates := &fakeRateRepo{base: map[int]*domain.Rate{}}
	uc := newTestUseCase(newFakeBookingRepo(), rates, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoRateAvailable)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), defaultRates(), &fakeNotifier{})

	cases := []struct {
		name   string
		modify func(r *Request)
	}{
		{"missing checkin", func(r *Request) { r.CheckinDate = "" }},
		{"malformed checkin", func(r *Request) { r.CheckinDate = "19/12/2025" }},
		{"checkout before checkin", func(r *Request) { r.CheckoutDate = "2025-12-18" }},
		{"checkout equals checkin", func(r *Request) { r.CheckoutDate = r.CheckinDate }},
		{"checkin in the past", func(r *Request) {
			r.CheckinDate = "2025-05-20"
			r.CheckoutDate = "2025-05-23"
		}},
		{"zero guests", func(r *Request) { r.Guests = 0 }},
		{"too many guests", func(r *Request) { r.Guests = 3 }},
		{"missing name", func(r *Request) { r.GuestName = "  " }},
		{"missing email", func(r *Request) { r.Email = "" }},
		{"invalid email", func(r *Request) { r.Email = "not-an-email" }},
		{"missing phone", func(r *Request) { r.Phone = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.modify(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CheckinTodayAllowed(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo(), defaultRates(), &fakeNotifier{})

	req := validRequest()
	req.CheckinDate = "2025-06-01"
	req.CheckoutDate = "2025-06-03"

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentSameRange(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(repo, defaultRates(), &fakeNotifier{})

	const workers = 8
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrDateConflict)
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent request must win")
	assert.Equal(t, workers-1, conflicted)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_SpecialRequestsStored(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(repo, defaultRates(), &fakeNotifier{})

	req := validRequest()
	req.SpecialRequests = ptr.Ptr("Late arrival, around 21:00")

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, repo.bookings[0].SpecialRequests)
	assert.Equal(t, "Late arrival, around 21:00", *repo.bookings[0].SpecialRequests)
}
