package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the payment state of a booking,
// tracked independently of the booking status
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentPaid      PaymentStatus = "paid"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// BookingSource identifies where a booking originated
type BookingSource string

// SourceDirect is a booking submitted through our own site.
// Imported bookings carry the platform tag ("airbnb", "booking.com", ...).
const SourceDirect BookingSource = "direct"

// Booking represents a reservation request for the property.
// The occupied range is half-open, [CheckIn, CheckOut): the checkout
// day does not block a new arrival.
type Booking struct {
	ID       int64
	CheckIn  types.Date
	CheckOut types.Date
	Guests   int

	GuestName       string
	Email           string
	Phone           string
	SpecialRequests *string

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// ComputedTotal is a price snapshot taken at creation time;
	// it is never recomputed when rates change later.
	ComputedTotal decimal.Decimal

	PaymentAmount    *decimal.Decimal
	PaymentDate      *time.Time
	PaymentReference *string
	PaymentMethod    *string

	AdminNotes    *string
	StatusHistory StatusHistory

	Source      BookingSource
	ExternalUID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking occupies the calendar.
// Rejected and cancelled bookings free their dates.
func (b *Booking) IsBlocking() bool {
	return b.Status != StatusRejected && b.Status != StatusCancelled
}

// Nights returns the number of nights of the stay
func (b *Booking) Nights() int {
	return b.CheckIn.DaysUntil(b.CheckOut)
}

// Overlaps reports whether the occupied ranges of two bookings intersect.
// Half-open semantics: a checkout and a checkin on the same day do not clash.
func (b *Booking) Overlaps(checkIn, checkOut types.Date) bool {
	return b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut)
}

// HistoryEntry is one append-only record of a status or payment change
type HistoryEntry struct {
	Type          string         `json:"type"` // "status" | "payment"
	Status        *BookingStatus `json:"status,omitempty"`
	PaymentStatus *PaymentStatus `json:"paymentStatus,omitempty"`
	Actor         string         `json:"actor"`
	At            time.Time      `json:"at"`
	Note          *string        `json:"note,omitempty"`
}

// StatusHistory append-only ordered log of booking changes
type StatusHistory []HistoryEntry

// AppendStatus добавляет запись о смене статуса
func (h StatusHistory) AppendStatus(status BookingStatus, actor string, at time.Time, note *string) StatusHistory {
	return append(h, HistoryEntry{
		Type:   "status",
		Status: &status,
		Actor:  actor,
		At:     at,
		Note:   note,
	})
}

// AppendPayment добавляет запись о смене статуса оплаты
func (h StatusHistory) AppendPayment(status PaymentStatus, actor string, at time.Time, note *string) StatusHistory {
	return append(h, HistoryEntry{
		Type:          "payment",
		PaymentStatus: &status,
		Actor:         actor,
		At:            at,
		Note:          note,
	})
}

// BookingsFilter фильтр для выборки бронирований в админке
type BookingsFilter struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	StartDate     *types.Date // checkin_date >= StartDate
	EndDate       *types.Date // checkout_date <= EndDate
	Page          int
	PerPage       int
}

// PaymentUpdate набор платежных полей, записываемых при смене статуса оплаты
type PaymentUpdate struct {
	Status    PaymentStatus
	Amount    *decimal.Decimal
	Date      *time.Time
	Reference *string
	Method    *string
}

// DashboardStats агрегированные показатели для админской панели
type DashboardStats struct {
	Total          int64
	Pending        int64
	Approved       int64
	Completed      int64
	Cancelled      int64
	Rejected       int64
	UpcomingStays  int64
	Revenue        decimal.Decimal
	RevenuePending decimal.Decimal
}
