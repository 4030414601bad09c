package create_schedule

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("create_schedule: facility not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("create_schedule: instructor not found")

	// ErrInstructorWrongFacility возвращается, когда инструктор относится к другому объекту
	ErrInstructorWrongFacility = errors.New("create_schedule: instructor belongs to another facility")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_schedule: internal error")
)
