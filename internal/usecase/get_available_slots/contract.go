package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.TimeSlot, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetActiveByFacilityAndDate(ctx context.Context, facilityID int64, date time.Time) ([]*domain.FacilityReservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
