package import_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("import_calendar: invalid input data")

	// ErrFetchFailed возвращается, когда фид не удалось загрузить
	ErrFetchFailed = errors.New("import_calendar: failed to fetch feed")

	// ErrParseFailed возвращается, когда фид не является корректным iCal
	ErrParseFailed = errors.New("import_calendar: failed to parse feed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("import_calendar: internal error")
)
