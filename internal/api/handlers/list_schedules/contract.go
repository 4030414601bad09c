package list_schedules

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/service/registry/models"
)

type RegistryService interface {
	ListFacilitySchedules(ctx context.Context, facilityID int64) (*models.ScheduleListResponse, error)
	ListInstructorSchedules(ctx context.Context, instructorID int64) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
