package get_facility_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	"github.com/m04kA/RC-FacilityService/internal/service/reservations/models"
)

// ParseQuery собирает запрос сервиса из query-параметров
// startDate, endDate, status, includeInactive
func ParseQuery(query url.Values, facilityID, userID int64) (*models.GetFacilityReservationsRequest, error) {
	req := &models.GetFacilityReservationsRequest{
		UserID:     userID,
		FacilityID: facilityID,
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

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
