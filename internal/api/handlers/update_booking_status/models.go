package update_booking_status

import "github.com/peppertree17/booking-service/internal/service/bookings/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status      string  `json:"status"` // "approved" | "rejected" | "cancelled" | "completed"
	Note        *string `json:"note,omitempty"`
	AdminNotes  *string `json:"adminNotes,omitempty"`
	NotifyGuest bool    `json:"notifyGuest"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actor string) *models.TransitionStatusRequest {
	return &models.TransitionStatusRequest{
		Status:      r.Status,
		Actor:       actor,
		Note:        r.Note,
		AdminNotes:  r.AdminNotes,
		NotifyGuest: r.NotifyGuest,
	}
}
