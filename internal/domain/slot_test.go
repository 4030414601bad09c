package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RC-FacilityService/pkg/types"
)

func newSchedule(day DayOfWeek, start, end types.TimeString, duration, capacity int) *InstructorSchedule {
	return &InstructorSchedule{
		ID:                  1,
		InstructorID:        10,
		FacilityID:          100,
		DayOfWeek:           day,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: duration,
		Capacity:            capacity,
	}
}

func TestExpandScheduleSlots_OneMatchingDay(t *testing.T) {
	// 2026-09-01 - вторник
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	schedule := newSchedule(Tuesday, "15:00", "18:00", 60, 5)

	slots, err := ExpandScheduleSlots(schedule, from, to, false)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, types.TimeString("15:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:00"), slots[0].EndTime)
	assert.Equal(t, types.TimeString("16:00"), slots[1].StartTime)
	assert.Equal(t, types.TimeString("17:00"), slots[1].EndTime)
	assert.Equal(t, types.TimeString("17:00"), slots[2].StartTime)
	assert.Equal(t, types.TimeString("18:00"), slots[2].EndTime)

	for _, s := range slots {
		assert.Equal(t, from, s.Date)
		assert.Equal(t, 5, s.Capacity)
		assert.Equal(t, int64(1), s.ScheduleID)
		assert.Equal(t, int64(100), s.FacilityID)
		assert.Equal(t, int64(10), s.InstructorID)
	}
}

func TestExpandScheduleSlots_TwoWeeks(t *testing.T) {
	// Горизонт в две недели содержит два понедельника
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // понедельник
	to := from.AddDate(0, 0, 13)

	schedule := newSchedule(Monday, "09:00", "11:00", 60, 2)

	slots, err := ExpandScheduleSlots(schedule, from, to, false)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, from, slots[0].Date)
	assert.Equal(t, from.AddDate(0, 0, 7), slots[2].Date)
}

func TestExpandScheduleSlots_ShortFinalSlot(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // вторник
	to := from

	schedule := newSchedule(Tuesday, "10:00", "11:30", 60, 3)

	// Без укороченного хвоста: остаток 30 минут отбрасывается
	slots, err := ExpandScheduleSlots(schedule, from, to, false)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("11:00"), slots[0].EndTime)

	// С укороченным хвостом: выпускается слот 11:00-11:30
	slots, err = ExpandScheduleSlots(schedule, from, to, true)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("11:00"), slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:30"), slots[1].EndTime)
}

func TestExpandScheduleSlots_NoMatchingDays(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // вторник
	to := from.AddDate(0, 0, 2)                         // до четверга

	schedule := newSchedule(Sunday, "10:00", "12:00", 60, 1)

	slots, err := ExpandScheduleSlots(schedule, from, to, false)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestTimeSlot_Key(t *testing.T) {
	slot := TimeSlot{
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "15:00",
	}

	key := slot.Key()
	assert.Equal(t, "2026-09-01", key.Date)
	assert.Equal(t, types.TimeString("15:00"), key.StartTime)
}

func TestCountOverlappingReservations(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 1)

	makeReservation := func(start, end types.TimeString, status ReservationStatus, d time.Time) *FacilityReservation {
		return &FacilityReservation{
			ReservationDate: d,
			StartTime:       start,
			EndTime:         end,
			Status:          status,
		}
	}

	reservations := []*FacilityReservation{
		makeReservation("15:00", "16:00", StatusPending, date), // точное совпадение
		makeReservation("15:30", "16:30", StatusAgree, date),   // частичное пересечение
		makeReservation("14:00", "15:00", StatusPending, date), // граничит, не пересекается
		makeReservation("16:00", "17:00", StatusAgree, date),   // граничит, не пересекается
		makeReservation("15:00", "16:00", StatusCancel, date),  // отменённая не считается
		makeReservation("15:00", "16:00", StatusReject, date),  // отклонённая не считается
		makeReservation("15:00", "16:00", StatusAgree, otherDate), // другая дата
	}

	count := CountOverlappingReservations("15:00", "16:00", date, reservations)
	assert.Equal(t, 2, count)
}

func TestAvailableSlot_IsFull(t *testing.T) {
	slot := AvailableSlot{AvailableSpots: 0, TotalSpots: 3}
	assert.True(t, slot.IsFull())

	slot.AvailableSpots = 1
	assert.False(t, slot.IsFull())
}
