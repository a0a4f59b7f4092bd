package upsert_rate

import (
	"github.com/shopspring/decimal"

	"github.com/peppertree17/booking-service/internal/service/rates/models"
	"github.com/peppertree17/booking-service/pkg/types"
)

// UpsertRateRequest HTTP request model
type UpsertRateRequest struct {
	Kind           string  `json:"kind"` // "base" | "special"
	Guests         int     `json:"guests"`
	AmountPerNight string  `json:"amountPerNight"` // "950.00"
	StartDate      *string `json:"startDate,omitempty"`
	EndDate        *string `json:"endDate,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertRateRequest) ToServiceRequest(actor string) (*models.UpsertRateRequest, error) {
	amount, err := decimal.NewFromString(r.AmountPerNight)
	if err != nil {
		return nil, err
	}

	req := &models.UpsertRateRequest{
		Kind:           r.Kind,
		Guests:         r.Guests,
		AmountPerNight: amount,
		Description:    r.Description,
		Actor:          actor,
	}

	if r.StartDate != nil {
		start, err := types.NewDateFromString(*r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
	}
	if r.EndDate != nil {
		end, err := types.NewDateFromString(*r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &end
	}

	return req, nil
}
