package generate_slots

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	generateSlots "github.com/m04kA/RC-FacilityService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	FromDate string `json:"fromDate"` // "2026-09-01"
	ToDate   string `json:"toDate"`   // "2026-09-30"
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	ScheduleID int64 `json:"scheduleId"`
	Created    int   `json:"created"`
	Deleted    int   `json:"deleted"`
	Total      int   `json:"total"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(scheduleID int64) (*generateSlots.Request, error) {
	fromDate, err := time.Parse(domain.DateFormat, r.FromDate)
	if err != nil {
		return nil, err
	}

	toDate, err := time.Parse(domain.DateFormat, r.ToDate)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		ScheduleID: scheduleID,
		FromDate:   fromDate,
		ToDate:     toDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		ScheduleID: resp.ScheduleID,
		Created:    resp.Created,
		Deleted:    resp.Deleted,
		Total:      resp.Total,
	}
}
