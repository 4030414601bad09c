package domain

import (
	"time"

	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// StatsFilter ограничивает сводки объектом и необязательным периодом дат
type StatsFilter struct {
	FacilityID int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// TimePeriod грубая корзина времени суток для статистики использования
type TimePeriod string

const (
	PeriodMorning   TimePeriod = "morning"   // 06:00 - 12:00
	PeriodAfternoon TimePeriod = "afternoon" // 12:00 - 18:00
	PeriodEvening   TimePeriod = "evening"   // 18:00 - 22:00
	PeriodNight     TimePeriod = "night"     // 22:00 - 06:00
)

// TimePeriodOf относит время начала бронирования к корзине
func TimePeriodOf(start types.TimeString) TimePeriod {
	minutes, err := start.Minutes()
	if err != nil {
		return PeriodNight
	}

	switch {
	case minutes >= 6*60 && minutes < 12*60:
		return PeriodMorning
	case minutes >= 12*60 && minutes < 18*60:
		return PeriodAfternoon
	case minutes >= 18*60 && minutes < 22*60:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// BucketCount счётчик по одной группе (корпус, день недели, корзина, житель)
type BucketCount struct {
	Key   string
	Count int64
}

// StatusCount счётчик бронирований в одном статусе
type StatusCount struct {
	Status ReservationStatus
	Count  int64
}
