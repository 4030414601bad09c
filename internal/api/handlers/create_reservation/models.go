package create_reservation

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
	reserveSlot "github.com/m04kA/RC-FacilityService/internal/usecase/reserve_slot"
	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FacilityID int64  `json:"facilityId"`
	Date       string `json:"date"`      // "2026-09-15"
	StartTime  string `json:"startTime"` // "15:00"
	EndTime    string `json:"endTime"`   // "16:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64   `json:"id"`
	FacilityID   int64   `json:"facilityId"`
	UserID       int64   `json:"userId"`
	UserBuilding *string `json:"userBuilding,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*reserveSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		UserID:     userID,
		FacilityID: r.FacilityID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		FacilityID:   resp.FacilityID,
		UserID:       resp.UserID,
		UserBuilding: resp.UserBuilding,
		Date:         resp.ReservationDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       string(resp.Status),
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
