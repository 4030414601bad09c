package update_schedule

import (
	"context"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InstructorSchedule, error)
	Update(ctx context.Context, s *domain.InstructorSchedule) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	MaxDateBySchedule(ctx context.Context, scheduleID int64) (*time.Time, error)
}

// SlotGenerator интерфейс генератора слотов.
// Вызывается внутри транзакции изменения расписания: слоты, не совпадающие
// с новыми параметрами, пересоздаются атомарно с самим изменением.
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
