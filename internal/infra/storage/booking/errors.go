package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDateOverlap возвращается, когда запись нарушила exclusion constraint
	// по диапазону дат (даты уже заняты другим блокирующим бронированием)
	ErrDateOverlap = errors.New("booking.repository: dates overlap an existing booking")

	// ErrDuplicateExternalUID возвращается при повторной вставке импортированного
	// бронирования с тем же внешним UID
	ErrDuplicateExternalUID = errors.New("booking.repository: duplicate external uid")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncodeHistory возвращается при ошибке сериализации истории статусов
	ErrEncodeHistory = errors.New("booking.repository: failed to encode status history")
)
