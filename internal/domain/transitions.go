package domain

// Allowed booking status transitions. Rejected, cancelled and completed
// are terminal.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

// Allowed payment status transitions, independent of booking status
// except for the single cross guard below.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPartial, PaymentPaid, PaymentCancelled},
	PaymentPartial: {PaymentPaid, PaymentRefunded},
	PaymentPaid:    {PaymentRefunded},
}

// CanTransitionStatus reports whether the booking status may move from "from" to "to"
func CanTransitionStatus(from, to BookingStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether the payment status may move from "from" to "to"
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// PaymentAllowedForStatus is the one cross guard between the two state
// machines: a rejected booking cannot carry money.
func PaymentAllowedForStatus(status BookingStatus, payment PaymentStatus) bool {
	if status != StatusRejected {
		return true
	}
	return payment != PaymentPartial && payment != PaymentPaid
}

// ValidBookingStatus проверяет, что строка является допустимым статусом
func ValidBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// ValidPaymentStatus проверяет, что строка является допустимым статусом оплаты
func ValidPaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded, PaymentCancelled:
		return PaymentStatus(s), true
	}
	return "", false
}
