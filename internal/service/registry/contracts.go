package registry

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/integrations/userservice"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	CreateFacility(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	GetFacilityByID(ctx context.Context, id int64) (*domain.Facility, error)
	ListFacilitiesByApartment(ctx context.Context, apartmentID int64) ([]*domain.Facility, error)
	UpdateFacility(ctx context.Context, id int64, name string, description *string) error
	CreateInstructor(ctx context.Context, ins *domain.Instructor) (*domain.Instructor, error)
	GetInstructorByID(ctx context.Context, id int64) (*domain.Instructor, error)
	ListInstructorsByFacility(ctx context.Context, facilityID int64) ([]*domain.Instructor, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListByFacility(ctx context.Context, facilityID int64) ([]*domain.InstructorSchedule, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*domain.InstructorSchedule, error)
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
