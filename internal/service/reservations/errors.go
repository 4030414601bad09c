package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrStatusConflict возвращается, когда статус изменился конкурентно
	ErrStatusConflict = errors.New("reservation status changed concurrently")

	// ErrInvalidCancelReason возвращается при некорректной причине отмены
	ErrInvalidCancelReason = errors.New("invalid cancel reason")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
