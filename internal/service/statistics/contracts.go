package statistics

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountByStatus(ctx context.Context, filter domain.StatsFilter) ([]domain.StatusCount, error)
	CountByBuilding(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error)
	CountByWeekday(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error)
	CountByTimePeriod(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error)
	CountByUser(ctx context.Context, filter domain.StatsFilter) ([]domain.BucketCount, error)
}

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetResident(ctx context.Context, userID int64) (*userservice.Resident, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
