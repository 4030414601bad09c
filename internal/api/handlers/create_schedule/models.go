package create_schedule

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	createSchedule "github.com/m04kA/RC-FacilityService/internal/usecase/create_schedule"
	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// CreateScheduleRequest HTTP request model
type CreateScheduleRequest struct {
	InstructorID        int64  `json:"instructorId"`
	FacilityID          int64  `json:"facilityId"`
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
	SlotsGenerated      int    `json:"slotsGenerated"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateScheduleRequest) ToUseCaseRequest() (*createSchedule.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createSchedule.Request{
		InstructorID:        r.InstructorID,
		FacilityID:          r.FacilityID,
		DayOfWeek:           domain.DayOfWeek(r.DayOfWeek),
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		Capacity:            r.Capacity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSchedule.Response) *ScheduleResponse {
	return &ScheduleResponse{
		ID:                  resp.ID,
		InstructorID:        resp.InstructorID,
		FacilityID:          resp.FacilityID,
		DayOfWeek:           string(resp.DayOfWeek),
		StartTime:           resp.StartTime.String(),
		EndTime:             resp.EndTime.String(),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Capacity:            resp.Capacity,
		SlotsGenerated:      resp.SlotsGenerated,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
