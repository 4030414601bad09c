package get_statistics

import (
	"net/url"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/service/statistics/models"
)

// ParseQuery собирает запрос сервиса из query-параметров startDate, endDate
func ParseQuery(query url.Values, facilityID, userID int64) (*models.GetStatisticsRequest, error) {
	req := &models.GetStatisticsRequest{
		FacilityID: facilityID,
		UserID:     userID,
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}
