package get_instructor

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/service/registry/models"
)

type RegistryService interface {
	GetInstructor(ctx context.Context, instructorID int64) (*models.InstructorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
