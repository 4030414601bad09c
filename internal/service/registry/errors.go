package registry

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("instructor not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
