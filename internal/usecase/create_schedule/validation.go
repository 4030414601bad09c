package create_schedule

import (
	"fmt"

	"github.com/m04kA/RC-FacilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if !req.DayOfWeek.IsValid() {
		return fmt.Errorf("%w: invalid dayOfWeek %q", ErrInvalidInput, req.DayOfWeek)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	windowMinutes, err := req.StartTime.MinutesBetween(req.EndTime)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate schedule window: %v", ErrInvalidInput, err)
	}
	if req.SlotDurationMinutes > windowMinutes {
		return fmt.Errorf("%w: slotDurationMinutes exceeds schedule window", ErrInvalidInput)
	}

	if req.Capacity < domain.MinSlotCapacity || req.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	return nil
}
