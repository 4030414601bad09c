package get_available_slots

import (
	"github.com/m04kA/RC-FacilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/RC-FacilityService/internal/usecase/get_available_slots"
)

// SlotResponse слот с количеством свободных мест
type SlotResponse struct {
	ID             int64  `json:"id"`
	ScheduleID     int64  `json:"scheduleId"`
	InstructorID   int64  `json:"instructorId"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	TotalSpots     int    `json:"totalSpots"`
	AvailableSpots int    `json:"availableSpots"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	FacilityID int64          `json:"facilityId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
	Total      int            `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:             s.ID,
			ScheduleID:     s.ScheduleID,
			InstructorID:   s.InstructorID,
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			TotalSpots:     s.TotalSpots,
			AvailableSpots: s.AvailableSpots,
		})
	}

	return &AvailableSlotsResponse{
		FacilityID: resp.FacilityID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
		Total:      len(slots),
	}
}
