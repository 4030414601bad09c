package facility

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("facility.repository: facility not found")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("facility.repository: instructor not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("facility.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)
