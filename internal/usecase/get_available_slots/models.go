package get_available_slots

import (
	"time"

	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	FacilityID int64     // ID объекта
	Date       time.Time // дата (без времени)
}

// Slot слот с вычисленной занятостью
type Slot struct {
	ID             int64
	ScheduleID     int64
	InstructorID   int64
	StartTime      types.TimeString
	EndTime        types.TimeString
	TotalSpots     int // вместимость слота
	AvailableSpots int // свободные места с учетом активных бронирований
}

// Response модель ответа со слотами на дату
type Response struct {
	FacilityID int64
	Date       time.Time
	Slots      []Slot
}
