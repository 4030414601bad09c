package domain

import (
	"strings"
	"time"

	"github.com/m04kA/RC-FacilityService/pkg/types"
)

// ReservationStatus статус бронирования.
// Машина состояний закрытая:
//
//	pending -> agree | reject | cancel
//	agree   -> cancel
//	reject, cancel - терминальные
type ReservationStatus string

const (
	StatusPending ReservationStatus = "pending"
	StatusAgree   ReservationStatus = "agree"
	StatusReject  ReservationStatus = "reject"
	StatusCancel  ReservationStatus = "cancel"
)

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []ReservationStatus{
	StatusPending, StatusAgree, StatusReject, StatusCancel,
}

// ActiveStatuses статусы, занимающие место в слоте
var ActiveStatuses = []ReservationStatus{
	StatusPending, StatusAgree,
}

// InactiveStatuses статусы, не учитываемые при подсчёте занятости.
// Отклонённые бронирования место не занимают, как и отменённые.
var InactiveStatuses = []ReservationStatus{
	StatusReject, StatusCancel,
}

// IsValid проверяет, что статус - одно из четырёх допустимых значений
func (s ReservationStatus) IsValid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для терминальных статусов
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusReject || s == StatusCancel
}

// CanTransitionTo проверяет допустимость перехода s -> next.
// agree - односторонние ворота: после подтверждения место освобождает
// только отмена.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusAgree || next == StatusReject || next == StatusCancel
	case StatusAgree:
		return next == StatusCancel
	default:
		return false
	}
}

// CancelReasonType тип причины отмены бронирования
type CancelReasonType string

const (
	CancelReasonPersonalSchedule CancelReasonType = "personal_schedule"
	CancelReasonHealth           CancelReasonType = "health"
	CancelReasonFacilityIssue    CancelReasonType = "facility_issue"
	CancelReasonOther            CancelReasonType = "other"
)

// AllCancelReasonTypes все допустимые типы причин отмены
var AllCancelReasonTypes = []CancelReasonType{
	CancelReasonPersonalSchedule,
	CancelReasonHealth,
	CancelReasonFacilityIssue,
	CancelReasonOther,
}

// IsValid проверяет, что тип причины - одно из допустимых значений
func (t CancelReasonType) IsValid() bool {
	for _, reason := range AllCancelReasonTypes {
		if t == reason {
			return true
		}
	}
	return false
}

// RequiresText возвращает true, если для типа обязателен свободный текст
func (t CancelReasonType) RequiresText() bool {
	return t == CancelReasonOther
}

// FacilityReservation бронирование слота жителем
type FacilityReservation struct {
	ID         int64
	FacilityID int64
	UserID     int64

	// UserBuilding корпус жителя, денормализуется из identity-сервиса
	// при создании (для статистики); nil при деградации сервиса
	UserBuilding *string

	ReservationDate time.Time // дата без времени, совпадает с датой StartTime
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          ReservationStatus

	CancelReasonType *CancelReasonType
	CancelReason     *string
	CancelledAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает место в слоте
func (r *FacilityReservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusAgree
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (r *FacilityReservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusAgree
}

// IsCancelled возвращает true для отменённого бронирования
func (r *FacilityReservation) IsCancelled() bool {
	return r.Status == StatusCancel
}

// ValidateCancelReason проверяет корректность пары (тип причины, текст).
// Для типа other текст обязателен и не может быть пустым.
func ValidateCancelReason(reasonType CancelReasonType, reason *string) error {
	if !reasonType.IsValid() {
		return ErrInvalidCancelReasonType
	}
	if reasonType.RequiresText() {
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return ErrMissingCancelReason
		}
	}
	return nil
}

// ReservationsFilter фильтр для выборки бронирований объекта
type ReservationsFilter struct {
	FacilityID      int64      // обязательный параметр
	StartDate       *time.Time // начало периода (опционально)
	EndDate         *time.Time // конец периода (опционально)
	Status          *ReservationStatus
	IncludeInactive bool // включать ли отменённые и отклонённые
}
