package rates

import "errors"

var (
	// ErrRateNotFound возвращается, когда тариф не найден или уже неактивен
	ErrRateNotFound = errors.New("rates: rate not found")

	// ErrOverlappingRate возвращается, когда окно нового спецтарифа
	// пересекается с активным спецтарифом того же числа гостей
	ErrOverlappingRate = errors.New("rates: special rate window overlaps an active rate")

	// ErrLastBaseRate возвращается при попытке деактивировать единственный
	// активный базовый тариф для числа гостей
	ErrLastBaseRate = errors.New("rates: cannot deactivate the last base rate")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rates: internal error")
)
