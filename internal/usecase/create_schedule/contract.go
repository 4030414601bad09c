package create_schedule

import (
	"context"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
	GetInstructorByID(ctx context.Context, id int64) (*domain.Instructor, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.InstructorSchedule) (*domain.InstructorSchedule, error)
}

// SlotGenerator интерфейс генератора слотов.
// Вызывается внутри транзакции создания расписания, чтобы расписание
// и его слоты появлялись атомарно.
type SlotGenerator interface {
	Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
