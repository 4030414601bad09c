package models

import (
	"errors"
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID     int64   `json:"userId"`
	ReasonType string  `json:"reasonType"`       // personal_schedule | health | facility_issue | other
	Reason     *string `json:"reason,omitempty"` // обязателен для reasonType=other
}

// GetUserReservationsRequest запрос на получение истории бронирований жителя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// GetFacilityReservationsRequest запрос на получение бронирований объекта
type GetFacilityReservationsRequest struct {
	UserID          int64      `json:"userId"`
	FacilityID      int64      `json:"facilityId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и отклонённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		FacilityID:      r.FacilityID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           int64   `json:"id"`
	FacilityID   int64   `json:"facilityId"`
	UserID       int64   `json:"userId"`
	UserBuilding *string `json:"userBuilding,omitempty"`

	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "15:00"
	EndTime   string `json:"endTime"`   // "16:00"
	Status    string `json:"status"`

	CancelReasonType *string    `json:"cancelReasonType,omitempty"`
	CancelReason     *string    `json:"cancelReason,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.FacilityReservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:           r.ID,
		FacilityID:   r.FacilityID,
		UserID:       r.UserID,
		UserBuilding: r.UserBuilding,
		Date:         r.ReservationDate.Format(domain.DateFormat),
		StartTime:    r.StartTime.String(),
		EndTime:      r.EndTime.String(),
		Status:       string(r.Status),
		CancelReason: r.CancelReason,
		CancelledAt:  r.CancelledAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	if r.CancelReasonType != nil {
		rt := string(*r.CancelReasonType)
		resp.CancelReasonType = &rt
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.FacilityReservation) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *FromDomainReservation(r))
	}

	return &ReservationListResponse{
		Reservations: result,
		Total:        len(result),
	}
}
