package get_facility_reservations

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetFacilityReservations(ctx context.Context, req *models.GetFacilityReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
