package userservice

import "errors"

var (
	// ErrResidentNotFound возвращается, когда житель не найден в UserService
	ErrResidentNotFound = errors.New("resident not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и бронь создается без данных о жителе
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
