package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/integrations/notifyservice"
	"github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByWindow(ctx context.Context, facilityID int64, date time.Time, start, end string) (*domain.TimeSlot, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.FacilityReservation) (*domain.FacilityReservation, error)
	GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.FacilityReservation, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetResidentWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Resident, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendEventBestEffort(ctx context.Context, event notifyservice.Event)
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
