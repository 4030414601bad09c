package update_schedule

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	updateSchedule "github.com/m04kA/RC-FacilityService/internal/usecase/update_schedule"
	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	DayOfWeek           string `json:"dayOfWeek"` // MONDAY .. SUNDAY
	StartTime           string `json:"startTime"` // "09:00"
	EndTime             string `json:"endTime"`   // "18:00"
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	Capacity            int    `json:"capacity"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ID                  int64  `json:"id"`
	InstructorID        int64  `json:"instructorId"`
	FacilityID          int64  `json:"facilityId"`
	DayOfWeek           string `json:"dayOfWeek"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	Capacity            int    `json:"capacity"`
	SlotsCreated        int    `json:"slotsCreated"`
	SlotsDeleted        int    `json:"slotsDeleted"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateScheduleRequest) ToUseCaseRequest(scheduleID int64) (*updateSchedule.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &updateSchedule.Request{
		ScheduleID:          scheduleID,
		DayOfWeek:           domain.DayOfWeek(r.DayOfWeek),
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		Capacity:            r.Capacity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateSchedule.Response) *ScheduleResponse {
	return &ScheduleResponse{
		ID:                  resp.ID,
		InstructorID:        resp.InstructorID,
		FacilityID:          resp.FacilityID,
		DayOfWeek:           string(resp.DayOfWeek),
		StartTime:           resp.StartTime.String(),
		EndTime:             resp.EndTime.String(),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Capacity:            resp.Capacity,
		SlotsCreated:        resp.SlotsCreated,
		SlotsDeleted:        resp.SlotsDeleted,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
