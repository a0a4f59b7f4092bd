package create_booking

import "errors"

var (
	// ErrDateConflict возвращается, когда запрошенные даты пересекаются
	// с существующим блокирующим бронированием
	ErrDateConflict = errors.New("create_booking: dates conflict with an existing booking")

	// ErrNoRateAvailable возвращается, когда для какой-то ночи проживания
	// не настроен ни один тариф
	ErrNoRateAvailable = errors.New("create_booking: no rate available for the requested stay")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
