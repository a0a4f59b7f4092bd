package update_payment_status

import (
	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/service/bookings/models"
)

// UpdatePaymentRequest HTTP request model
type UpdatePaymentRequest struct {
	PaymentStatus string  `json:"paymentStatus"` // "partial" | "paid" | "refunded" | "cancelled"
	Amount        *string `json:"amount,omitempty"`
	Reference     *string `json:"reference,omitempty"`
	Method        *string `json:"method,omitempty"`
	Note          *string `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePaymentRequest) ToServiceRequest(actor string) (*models.TransitionPaymentRequest, error) {
	req := &models.TransitionPaymentRequest{
		PaymentStatus: r.PaymentStatus,
		Reference:     r.Reference,
		Method:        r.Method,
		Actor:         actor,
		Note:          r.Note,
	}

	if r.Amount != nil {
		amount, err := decimal.NewFromString(*r.Amount)
		if err != nil {
			return nil, err
		}
		req.Amount = &amount
	}

	return req, nil
}
