package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

// validatedDates разобранные и проверенные даты запроса
type validatedDates struct {
	checkIn  types.Date
	checkOut types.Date
}

// validateRequest валидирует входные данные запроса и разбирает даты
func validateRequest(req *Request, today types.Date) (*validatedDates, error) {
	if req.CheckinDate == "" {
		return nil, fmt.Errorf("%w: checkinDate is required", ErrInvalidInput)
	}
	if req.CheckoutDate == "" {
		return nil, fmt.Errorf("%w: checkoutDate is required", ErrInvalidInput)
	}

	checkIn, err := types.NewDateFromString(req.CheckinDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checkinDate: %v", ErrInvalidInput, err)
	}
	checkOut, err := types.NewDateFromString(req.CheckoutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checkoutDate: %v", ErrInvalidInput, err)
	}

	if !checkIn.Before(checkOut) {
		return nil, fmt.Errorf("%w: checkoutDate must be after checkinDate", ErrInvalidInput)
	}
	if checkIn.Before(today) {
		return nil, fmt.Errorf("%w: checkinDate must not be in the past", ErrInvalidInput)
	}

	if req.Guests < domain.MinGuests || req.Guests > domain.MaxGuests {
		return nil, fmt.Errorf("%w: guests must be between %d and %d", ErrInvalidInput, domain.MinGuests, domain.MaxGuests)
	}

	if err := validateContact(req); err != nil {
		return nil, err
	}

	return &validatedDates{checkIn: checkIn, checkOut: checkOut}, nil
}

// validateContact валидирует контактные данные гостя
func validateContact(req *Request) error {
	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests is too long", ErrInvalidInput)
	}

	return nil
}
