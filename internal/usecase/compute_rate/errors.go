package compute_rate

import "errors"

var (
	// ErrNoRateAvailable возвращается, когда для какой-то ночи проживания
	// не настроен ни один тариф
	ErrNoRateAvailable = errors.New("compute_rate: no rate available for the requested stay")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_rate: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_rate: internal error")
)
