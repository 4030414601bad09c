package list_facilities

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/service/registry/models"
)

type RegistryService interface {
	ListFacilities(ctx context.Context, apartmentID int64) (*models.FacilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
