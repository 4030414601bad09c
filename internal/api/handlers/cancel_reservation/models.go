package cancel_reservation

import "github.com/m04kA/RC-FacilityService/internal/service/reservations/models"

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	ReasonType string  `json:"reasonType"`       // personal_schedule | health | facility_issue | other
	Reason     *string `json:"reason,omitempty"` // обязателен для reasonType=other
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(userID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		UserID:     userID,
		ReasonType: r.ReasonType,
		Reason:     r.Reason,
	}
}
