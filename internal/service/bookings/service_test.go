package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peppertree17/booking-service/internal/domain"
	bookingRepo "github.com/peppertree17/booking-service/internal/infra/storage/booking"
	"github.com/peppertree17/booking-service/internal/service/bookings/models"
	"github.com/peppertree17/booking-service/pkg/ptr"
	"github.com/peppertree17/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.PaymentStatus != nil && b.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, history domain.StatusHistory, adminNotes *string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.StatusHistory = history
	if adminNotes != nil {
		b.AdminNotes = adminNotes
	}
	return nil
}

func (f *fakeBookingRepo) UpdatePayment(_ context.Context, id int64, payment domain.PaymentUpdate, history domain.StatusHistory) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentStatus = payment.Status
	b.StatusHistory = history
	if payment.Amount != nil {
		b.PaymentAmount = payment.Amount
	}
	if payment.Date != nil {
		b.PaymentDate = payment.Date
	}
	if payment.Reference != nil {
		b.PaymentReference = payment.Reference
	}
	if payment.Method != nil {
		b.PaymentMethod = payment.Method
	}
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) Stats(_ context.Context, _ types.Date) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{
		Total:   int64(len(f.bookings)),
		Revenue: decimal.Zero,
	}, nil
}

type fakeNotifier struct {
	statusUpdates []int64
}

func (f *fakeNotifier) SendStatusUpdate(_ context.Context, b *domain.Booking) error {
	f.statusUpdates = append(f.statusUpdates, b.ID)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)

func newTestService(repo *fakeBookingRepo, notifier *fakeNotifier) *Service {
	svc := NewService(repo, notifier, &fakeTxManager{}, nopLogger{})
	svc.SetTimeProvider(fixedTime{t: testNow})
	return svc
}

func pendingBooking(id int64) *domain.Booking {
	history := domain.StatusHistory{}.AppendStatus(domain.StatusPending, "system", testNow.Add(-time.Hour), nil)
	return &domain.Booking{
		ID:            id,
		CheckIn:       types.NewDate(2025, time.August, 1),
		CheckOut:      types.NewDate(2025, time.August, 4),
		Guests:        2,
		GuestName:     "Thandi Nkosi",
		Email:         "thandi@example.com",
		Phone:         "+27 82 000 0000",
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		ComputedTotal: decimal.RequireFromString("2850.00"),
		StatusHistory: history,
		Source:        domain.SourceDirect,
	}
}

func TestTransitionStatus_PendingToApproved(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.TransitionStatus(context.Background(), 1, &models.TransitionStatusRequest{
		Status:      "approved",
		Actor:       "owner@example.com",
		NotifyGuest: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	stored, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	require.Len(t, stored.StatusHistory, 2)
	assert.Equal(t, domain.StatusApproved, *stored.StatusHistory[1].Status)
	assert.Equal(t, "owner@example.com", stored.StatusHistory[1].Actor)
	assert.Equal(t, testNow, stored.StatusHistory[1].At)

	assert.Equal(t, []int64{1}, notifier.statusUpdates)
}

func TestTransitionStatus_NoNotifyWhenNotRequested(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.TransitionStatus(context.Background(), 1, &models.TransitionStatusRequest{
		Status: "rejected",
		Actor:  "owner@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.statusUpdates)
}

func TestTransitionStatus_IllegalLeavesHistoryUnchanged(t *testing.T) {
	booking := pendingBooking(1)
	booking.Status = domain.StatusRejected
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.TransitionStatus(context.Background(), 1, &models.TransitionStatusRequest{
		Status: "approved",
		Actor:  "owner@example.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	stored, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusRejected, stored.Status)
	assert.Len(t, stored.StatusHistory, 1, "history must not grow on a rejected transition")
}

func TestTransitionStatus_TerminalStatuses(t *testing.T) {
	for _, terminal := range []domain.BookingStatus{
		domain.StatusRejected, domain.StatusCancelled, domain.StatusCompleted,
	} {
		booking := pendingBooking(1)
		booking.Status = terminal
		svc := newTestService(newFakeBookingRepo(booking), &fakeNotifier{})

		for _, target := range []string{"pending", "approved", "cancelled", "completed"} {
			_, err := svc.TransitionStatus(context.Background(), 1, &models.TransitionStatusRequest{
				Status: target,
				Actor:  "owner@example.com",
			})
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", terminal, target)
		}
	}
}

func TestTransitionStatus_UnknownStatus(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), &fakeNotifier{})

	_, err := svc.TransitionStatus(context.Background(), 1, &models.TransitionStatusRequest{
		Status: "confirmed",
		Actor:  "owner@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransitionStatus_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeNotifier{})

	_, err := svc.TransitionStatus(context.Background(), 42, &models.TransitionStatusRequest{
		Status: "approved",
		Actor:  "owner@example.com",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransitionPayment_PaidSetsPaymentDate(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newTestService(repo, &fakeNotifier{})

	amount := decimal.RequireFromString("2850.00")
	resp, err := svc.TransitionPayment(context.Background(), 1, &models.TransitionPaymentRequest{
		PaymentStatus: "paid",
		Amount:        &amount,
		Reference:     ptr.Ptr("EFT-8812"),
		Method:        ptr.Ptr("eft"),
		Actor:         "owner@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	require.NotNil(t, resp.PaymentDate)

	stored, _ := repo.GetByID(context.Background(), 1)
	require.NotNil(t, stored.PaymentDate)
	assert.Equal(t, testNow, *stored.PaymentDate)
	assert.Equal(t, "EFT-8812", *stored.PaymentReference)

	// Запись об оплате попала в историю
	last := stored.StatusHistory[len(stored.StatusHistory)-1]
	assert.Equal(t, "payment", last.Type)
	assert.Equal(t, domain.PaymentPaid, *last.PaymentStatus)
}

func TestTransitionPayment_PartialDoesNotSetPaymentDate(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newTestService(repo, &fakeNotifier{})

	amount := decimal.RequireFromString("1000.00")
	_, err := svc.TransitionPayment(context.Background(), 1, &models.TransitionPaymentRequest{
		PaymentStatus: "partial",
		Amount:        &amount,
		Actor:         "owner@example.com",
	})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), 1)
	assert.Nil(t, stored.PaymentDate)
	assert.Equal(t, domain.PaymentPartial, stored.PaymentStatus)
}

func TestTransitionPayment_RejectedBookingCannotBePaid(t *testing.T) {
	booking := pendingBooking(1)
	booking.Status = domain.StatusRejected
	repo := newFakeBookingRepo(booking)
	svc := newTestService(repo, &fakeNotifier{})

	for _, target := range []string{"partial", "paid"} {
		_, err := svc.TransitionPayment(context.Background(), 1, &models.TransitionPaymentRequest{
			PaymentStatus: target,
			Actor:         "owner@example.com",
		})
		assert.ErrorIs(t, err, ErrPaymentOnRejected, "payment %s", target)
	}

	// Отмена оплаты по отклоненному бронированию разрешена
	_, err := svc.TransitionPayment(context.Background(), 1, &models.TransitionPaymentRequest{
		PaymentStatus: "cancelled",
		Actor:         "owner@example.com",
	})
	assert.NoError(t, err)
}

func TestTransitionPayment_IllegalTransition(t *testing.T) {
	booking := pendingBooking(1)
	booking.PaymentStatus = domain.PaymentRefunded
	svc := newTestService(newFakeBookingRepo(booking), &fakeNotifier{})

	_, err := svc.TransitionPayment(context.Background(), 1, &models.TransitionPaymentRequest{
		PaymentStatus: "paid",
		Actor:         "owner@example.com",
	})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransitionPayment_NegativeAmount(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), &fakeNotifier{})

	amount := decimal.RequireFromString("-5.00")
	_, err := svc.TransitionPayment(context.Background(), 1, &models.TransitionPaymentRequest{
		PaymentStatus: "paid",
		Amount:        &amount,
		Actor:         "owner@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newTestService(repo, &fakeNotifier{})

	err := svc.Delete(context.Background(), 1, "owner@example.com")
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	err = svc.Delete(context.Background(), 1, "owner@example.com")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeNotifier{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
