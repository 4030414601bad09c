package domain

import (
	"time"

	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// TimeSlot конкретный бронируемый интервал, сгенерированный из расписания.
// Слоты - производные данные: занятость по ним не хранится, а вычисляется
// по журналу бронирований на каждый запрос.
type TimeSlot struct {
	ID           int64
	ScheduleID   int64
	FacilityID   int64
	InstructorID int64
	Date         time.Time // дата без времени
	StartTime    types.TimeString
	EndTime      types.TimeString
	Capacity     int
	CreatedAt    time.Time
}

// SlotKey адресует слот внутри расписания: (дата, время начала).
// Используется при идемпотентной регенерации для сравнения наборов слотов.
type SlotKey struct {
	Date      string // DateFormat
	StartTime types.TimeString
}

// Key возвращает ключ слота
func (s *TimeSlot) Key() SlotKey {
	return SlotKey{
		Date:      s.Date.Format(DateFormat),
		StartTime: s.StartTime,
	}
}

// AvailableSlot слот вместе с вычисленной занятостью
type AvailableSlot struct {
	Slot           TimeSlot
	AvailableSpots int
	TotalSpots     int
}

// IsFull возвращает true, если свободных мест нет
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// ExpandScheduleSlots разворачивает расписание в набор слотов на горизонте
// [from, to] (обе даты включительно). Для каждой даты горизонта с подходящим
// днём недели окно [StartTime, EndTime) нарезается последовательными
// интервалами по SlotDurationMinutes. Если окно не делится нацело, последний
// неполный интервал либо выпускается укороченным слотом (keepShortFinalSlot),
// либо отбрасывается.
//
// Результат отсортирован по дате, затем по времени начала.
func ExpandScheduleSlots(schedule *InstructorSchedule, from, to time.Time, keepShortFinalSlot bool) ([]TimeSlot, error) {
	slots := make([]TimeSlot, 0)

	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)

	for date := fromDay; !date.After(toDay); date = date.AddDate(0, 0, 1) {
		if DayOfWeekFromWeekday(date.Weekday()) != schedule.DayOfWeek {
			continue
		}

		daySlots, err := partitionWindow(schedule, date, keepShortFinalSlot)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}

	return slots, nil
}

// partitionWindow нарезает окно расписания на слоты для одной даты
func partitionWindow(schedule *InstructorSchedule, date time.Time, keepShortFinalSlot bool) ([]TimeSlot, error) {
	slots := make([]TimeSlot, 0)

	current := schedule.StartTime
	for current.IsBefore(schedule.EndTime) {
		end, err := current.AddMinutes(schedule.SlotDurationMinutes)
		if err != nil || end.IsAfter(schedule.EndTime) {
			// Остаток окна короче полного слота
			if !keepShortFinalSlot {
				break
			}
			end = schedule.EndTime
		}

		slots = append(slots, TimeSlot{
			ScheduleID:   schedule.ID,
			FacilityID:   schedule.FacilityID,
			InstructorID: schedule.InstructorID,
			Date:         date,
			StartTime:    current,
			EndTime:      end,
			Capacity:     schedule.Capacity,
		})

		if end == schedule.EndTime {
			break
		}
		current = end
	}

	return slots, nil
}

// CountOverlappingReservations подсчитывает активные бронирования,
// строго пересекающиеся с интервалом [start, end) указанной даты.
// Граничащие интервалы (конец одного == начало другого) пересечением
// не считаются.
func CountOverlappingReservations(start, end types.TimeString, date time.Time, reservations []*FacilityReservation) int {
	count := 0

	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if !isSameDay(r.ReservationDate, date) {
			continue
		}
		if r.StartTime.IsBefore(end) && r.EndTime.IsAfter(start) {
			count++
		}
	}

	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
