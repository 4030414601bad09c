package update_schedule

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// Request модель запроса на изменение расписания.
// Все параметры окна задаются целиком - частичных обновлений нет.
type Request struct {
	ScheduleID          int64
	DayOfWeek           domain.DayOfWeek
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	Capacity            int
}

// Response модель ответа с обновленным расписанием
type Response struct {
	ID                  int64
	InstructorID        int64
	FacilityID          int64
	DayOfWeek           domain.DayOfWeek
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	Capacity            int
	SlotsCreated        int // слоты, созданные при регенерации
	SlotsDeleted        int // устаревшие слоты, удаленные при регенерации

	CreatedAt time.Time
	UpdatedAt time.Time
}
