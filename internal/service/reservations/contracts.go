package reservations

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/integrations/notifyservice"
	"github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.FacilityReservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.FacilityReservation, error)
	GetByFacilityWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.FacilityReservation, error)
	UpdateStatusIf(ctx context.Context, id int64, expected, next domain.ReservationStatus) error
	CancelIf(ctx context.Context, id int64, expected domain.ReservationStatus, reasonType domain.CancelReasonType, reason *string) error
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetResident(ctx context.Context, userID int64) (*userservice.Resident, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendEventBestEffort(ctx context.Context, event notifyservice.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
