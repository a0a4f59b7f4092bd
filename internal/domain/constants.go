package domain

// Business validation constants
const (
	MinGuests = 1
	MaxGuests = 2

	MaxGuestNameLength       = 100
	MaxEmailLength           = 120
	MaxPhoneLength           = 20
	MaxNoteLength            = 500
	MaxSpecialRequestsLength = 1000

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateFormat формат дат во внешнем API (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// BlockingStatuses статусы, при которых бронирование занимает календарь.
// Используется при проверке конфликтов дат и построении занятости месяца.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusCompleted,
}

// NonBlockingStatuses статусы, освобождающие даты
var NonBlockingStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
}

// ExportableStatuses статусы, попадающие в iCal-фид.
// Наружу отдаются только подтвержденные проживания, pending не экспортируется.
var ExportableStatuses = []BookingStatus{
	StatusApproved,
	StatusCompleted,
}
