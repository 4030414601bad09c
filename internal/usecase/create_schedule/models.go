package create_schedule

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// Request модель запроса на создание расписания инструктора
type Request struct {
	InstructorID        int64            // ID инструктора
	FacilityID          int64            // ID объекта
	DayOfWeek           domain.DayOfWeek // день недели
	StartTime           types.TimeString // начало окна (например, "09:00")
	EndTime             types.TimeString // конец окна (например, "18:00")
	SlotDurationMinutes int              // длительность слота в минутах
	Capacity            int              // вместимость каждого слота
}

// Response модель ответа с созданным расписанием
type Response struct {
	ID                  int64
	InstructorID        int64
	FacilityID          int64
	DayOfWeek           domain.DayOfWeek
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	Capacity            int
	SlotsGenerated      int // количество слотов, созданных на горизонте по умолчанию

	CreatedAt time.Time
	UpdatedAt time.Time
}
