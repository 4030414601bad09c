package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InstructorSchedule, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByScheduleInRange(ctx context.Context, scheduleID int64, from, to time.Time) ([]*domain.TimeSlot, error)
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.FacilityReservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
