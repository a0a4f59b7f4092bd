package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// ListBookingsRequest запрос на получение страницы бронирований
type ListBookingsRequest struct {
	Status        *string
	PaymentStatus *string
	StartDate     *types.Date
	EndDate       *types.Date
	Page          int
	PerPage       int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Page:      r.Page,
		PerPage:   r.PerPage,
	}

	if r.Status != nil {
		status, ok := domain.ValidBookingStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if r.PaymentStatus != nil {
		status, ok := domain.ValidPaymentStatus(*r.PaymentStatus)
		if !ok {
			return filter, ErrInvalidPaymentStatus
		}
		filter.PaymentStatus = &status
	}

	return filter, nil
}

// TransitionStatusRequest запрос на смену статуса бронирования
type TransitionStatusRequest struct {
	Status      string
	Actor       string
	Note        *string
	AdminNotes  *string
	NotifyGuest bool
}

// TransitionPaymentRequest запрос на смену статуса оплаты
type TransitionPaymentRequest struct {
	PaymentStatus string
	Amount        *decimal.Decimal
	Reference     *string
	Method        *string
	Actor         string
	Note          *string
}

// Response модели

// HistoryEntryResponse запись истории изменений бронирования
type HistoryEntryResponse struct {
	Type          string    `json:"type"`
	Status        *string   `json:"status,omitempty"`
	PaymentStatus *string   `json:"paymentStatus,omitempty"`
	Actor         string    `json:"actor"`
	At            time.Time `json:"at"`
	Note          *string   `json:"note,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64  `json:"id"`
	CheckinDate  string `json:"checkinDate"`  // "2025-12-19"
	CheckoutDate string `json:"checkoutDate"` // "2025-12-22"
	Nights       int    `json:"nights"`
	Guests       int    `json:"guests"`

	GuestName       string  `json:"guestName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	ComputedTotal    string  `json:"computedTotal"`
	PaymentAmount    *string `json:"paymentAmount,omitempty"`
	PaymentDate      *string `json:"paymentDate,omitempty"` // ISO 8601
	PaymentReference *string `json:"paymentReference,omitempty"`
	PaymentMethod    *string `json:"paymentMethod,omitempty"`

	AdminNotes    *string                `json:"adminNotes,omitempty"`
	StatusHistory []HistoryEntryResponse `json:"statusHistory"`

	Source      string  `json:"source"`
	ExternalUID *string `json:"externalUid,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse страница бронирований с метаданными пагинации
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"perPage"`
}

// DashboardStatsResponse агрегаты для админской панели
type DashboardStatsResponse struct {
	Total          int64  `json:"total"`
	Pending        int64  `json:"pending"`
	Approved       int64  `json:"approved"`
	Completed      int64  `json:"completed"`
	Cancelled      int64  `json:"cancelled"`
	Rejected       int64  `json:"rejected"`
	UpcomingStays  int64  `json:"upcomingStays"`
	Revenue        string `json:"revenue"`
	RevenuePending string `json:"revenuePending"`

	Recent []BookingResponse `json:"recent"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		CheckinDate:      b.CheckIn.String(),
		CheckoutDate:     b.CheckOut.String(),
		Nights:           b.Nights(),
		Guests:           b.Guests,
		GuestName:        b.GuestName,
		Email:            b.Email,
		Phone:            b.Phone,
		SpecialRequests:  b.SpecialRequests,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		ComputedTotal:    b.ComputedTotal.StringFixed(2),
		PaymentReference: b.PaymentReference,
		PaymentMethod:    b.PaymentMethod,
		AdminNotes:       b.AdminNotes,
		StatusHistory:    fromDomainHistory(b.StatusHistory),
		Source:           string(b.Source),
		ExternalUID:      b.ExternalUID,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.PaymentAmount != nil {
		amount := b.PaymentAmount.StringFixed(2)
		resp.PaymentAmount = &amount
	}
	if b.PaymentDate != nil {
		date := b.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &date
	}

	return resp
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total int64, page, perPage int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}

	for _, booking := range bookings {
		if b := FromDomainBooking(booking); b != nil {
			resp.Bookings = append(resp.Bookings, *b)
		}
	}

	return resp
}

// FromDomainStats конвертирует агрегаты в DTO
func FromDomainStats(s *domain.DashboardStats) *DashboardStatsResponse {
	if s == nil {
		return nil
	}
	return &DashboardStatsResponse{
		Total:          s.Total,
		Pending:        s.Pending,
		Approved:       s.Approved,
		Completed:      s.Completed,
		Cancelled:      s.Cancelled,
		Rejected:       s.Rejected,
		UpcomingStays:  s.UpcomingStays,
		Revenue:        s.Revenue.StringFixed(2),
		RevenuePending: s.RevenuePending.StringFixed(2),
	}
}

func fromDomainHistory(history domain.StatusHistory) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(history))
	for _, e := range history {
		entry := HistoryEntryResponse{
			Type:  e.Type,
			Actor: e.Actor,
			At:    e.At,
			Note:  e.Note,
		}
		if e.Status != nil {
			s := string(*e.Status)
			entry.Status = &s
		}
		if e.PaymentStatus != nil {
			s := string(*e.PaymentStatus)
			entry.PaymentStatus = &s
		}
		out = append(out, entry)
	}
	return out
}
