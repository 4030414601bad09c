package generate_slots

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("generate_slots: schedule not found")

	// ErrHorizonTooLong возвращается, когда запрошенный горизонт генерации
	// превышает максимально допустимый
	ErrHorizonTooLong = errors.New("generate_slots: horizon is too long")

	// ErrSlotHasReservations возвращается, когда устаревший слот нельзя
	// удалить из-за активных бронирований
	ErrSlotHasReservations = errors.New("generate_slots: stale slot has active reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
