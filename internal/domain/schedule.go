package domain

import (
	"time"

	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// DayOfWeek день недели в символьном виде (хранится в БД как строка)
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// AllDaysOfWeek все допустимые значения дня недели
var AllDaysOfWeek = []DayOfWeek{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// IsValid проверяет, что значение - один из семи дней недели
func (d DayOfWeek) IsValid() bool {
	for _, day := range AllDaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// Weekday конвертирует в time.Weekday
func (d DayOfWeek) Weekday() time.Weekday {
	switch d {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

// DayOfWeekFromWeekday конвертирует time.Weekday в DayOfWeek
func DayOfWeekFromWeekday(w time.Weekday) DayOfWeek {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// InstructorSchedule шаблон еженедельной доступности инструктора.
// Окно [StartTime, EndTime) в указанный день недели нарезается на слоты
// длительностью SlotDurationMinutes с вместимостью Capacity каждый.
type InstructorSchedule struct {
	ID                  int64
	InstructorID        int64
	FacilityID          int64
	DayOfWeek           DayOfWeek
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	Capacity            int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// WindowMinutes возвращает длину окна расписания в минутах
func (s *InstructorSchedule) WindowMinutes() (int, error) {
	return s.StartTime.MinutesBetween(s.EndTime)
}
