package models

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
)

// GetStatisticsRequest запрос сводной статистики объекта
type GetStatisticsRequest struct {
	FacilityID int64      `json:"facilityId"`
	UserID     int64      `json:"userId"`
	StartDate  *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate    *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStatisticsRequest) ToDomainFilter() domain.StatsFilter {
	return domain.StatsFilter{
		FacilityID: r.FacilityID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

// StatusStat счётчик и доля бронирований в одном статусе
type StatusStat struct {
	Count int64   `json:"count"`
	Ratio float64 `json:"ratio"` // доля от общего числа бронирований
}

// StatisticsResponse сводная статистика использования объекта
type StatisticsResponse struct {
	FacilityID int64 `json:"facilityId"`
	Total      int64 `json:"total"`

	// ByStatus счётчики по статусам: pending, agree, reject, cancel
	ByStatus map[string]StatusStat `json:"byStatus"`

	// CancellationRatio доля отменённых бронирований; 0 при отсутствии броней
	CancellationRatio float64 `json:"cancellationRatio"`

	ByBuilding   map[string]int64 `json:"byBuilding"`
	ByWeekday    map[string]int64 `json:"byWeekday"`
	ByTimePeriod map[string]int64 `json:"byTimePeriod"`
	ByUser       map[string]int64 `json:"byUser"`
}
