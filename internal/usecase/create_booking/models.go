package create_booking

import (
	"time"

	"github.com/peppertree17/booking-service/internal/pricing"
)

// Request запрос на создание бронирования с публичного сайта
type Request struct {
	CheckinDate     string  `json:"checkinDate"`  // "2025-12-19"
	CheckoutDate    string  `json:"checkoutDate"` // "2025-12-22"
	Guests          int     `json:"guests"`
	GuestName       string  `json:"guestName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// NightPrice цена одной ночи в разбивке стоимости
type NightPrice struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Kind   string `json:"kind"` // "base" | "special"
}

// Response созданное бронирование с зафиксированной стоимостью
type Response struct {
	ID            int64        `json:"id"`
	CheckinDate   string       `json:"checkinDate"`
	CheckoutDate  string       `json:"checkoutDate"`
	Nights        int          `json:"nights"`
	Guests        int          `json:"guests"`
	GuestName     string       `json:"guestName"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"paymentStatus"`
	ComputedTotal string       `json:"computedTotal"`
	Breakdown     []NightPrice `json:"breakdown"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// fromQuoteBreakdown конвертирует разбивку стоимости в DTO
func fromQuoteBreakdown(quote *pricing.Quote) []NightPrice {
	out := make([]NightPrice, 0, len(quote.Breakdown))
	for _, night := range quote.Breakdown {
		out = append(out, NightPrice{
			Date:   night.Date.String(),
			Amount: night.Amount.StringFixed(2),
			Kind:   string(night.Kind),
		})
	}
	return out
}
