package reserve_slot

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID     int64            // ID жителя
	FacilityID int64            // ID объекта
	Date       time.Time        // дата бронирования (без времени)
	StartTime  types.TimeString // начало слота (например, "15:00")
	EndTime    types.TimeString // конец слота (например, "16:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	FacilityID int64
	UserID     int64

	// UserBuilding корпус жителя; nil, если UserService был недоступен
	UserBuilding *string

	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          domain.ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
