package pricing

import "errors"

var (
	// ErrNoRateAvailable возвращается, когда для какой-то ночи проживания
	// нет ни спецтарифа, ни базового тарифа
	ErrNoRateAvailable = errors.New("pricing: no rate available for stay")

	// ErrRateConflict возвращается, когда одну ночь покрывают два активных
	// спецтарифа. Сервис тарифов не допускает таких окон, поэтому конфликт
	// означает поврежденные данные.
	ErrRateConflict = errors.New("pricing: conflicting special rates for night")

	// ErrInvalidRange возвращается при пустом или перевернутом диапазоне
	ErrInvalidRange = errors.New("pricing: invalid date range")
)
