package generate_slots

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxHorizonDays int) error {
	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() {
		return fmt.Errorf("%w: fromDate is required", ErrInvalidInput)
	}

	if req.ToDate.IsZero() {
		return fmt.Errorf("%w: toDate is required", ErrInvalidInput)
	}

	if req.ToDate.Before(req.FromDate) {
		return fmt.Errorf("%w: toDate must not be before fromDate", ErrInvalidInput)
	}

	horizonDays := int(req.ToDate.Sub(req.FromDate).Hours()/24) + 1
	if horizonDays > maxHorizonDays {
		return fmt.Errorf("%w: requested %d days, max %d", ErrHorizonTooLong, horizonDays, maxHorizonDays)
	}

	return nil
}
