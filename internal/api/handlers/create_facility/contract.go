package create_facility

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/service/registry/models"
)

type RegistryService interface {
	CreateFacility(ctx context.Context, req *models.CreateFacilityRequest) (*models.FacilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
