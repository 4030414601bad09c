package reserve_slot

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = errors.New("reserve_slot: facility not found")

	// ErrUserNotFound возвращается, когда житель не найден в UserService
	ErrUserNotFound = errors.New("reserve_slot: user not found")

	// ErrInvalidSlot возвращается, когда запрошенный интервал не совпадает
	// ни с одним сгенерированным слотом объекта
	ErrInvalidSlot = errors.New("reserve_slot: requested interval does not match any slot")

	// ErrCapacityExceeded возвращается, когда все места слота заняты
	ErrCapacityExceeded = errors.New("reserve_slot: slot capacity exceeded")

	// ErrConflict возвращается, когда сериализуемая транзакция не прошла
	// после всех повторов из-за конкурентных бронирований
	ErrConflict = errors.New("reserve_slot: concurrent reservation conflict")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("reserve_slot: invalid reservation date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
