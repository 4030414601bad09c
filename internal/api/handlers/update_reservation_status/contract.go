package update_reservation_status

import (
	"context"

	"github.com/m04kA/RC-FacilityService/internal/service/reservations/models"
)

type ReservationsService interface {
	Approve(ctx context.Context, reservationID int64, userID int64) (*models.ReservationResponse, error)
	Reject(ctx context.Context, reservationID int64, userID int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
