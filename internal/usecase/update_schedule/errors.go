package update_schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("update_schedule: schedule not found")

	// ErrSlotHasReservations возвращается, когда изменение расписания
	// затрагивает слоты с активными бронированиями
	ErrSlotHasReservations = errors.New("update_schedule: affected slot has active reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_schedule: internal error")
)
