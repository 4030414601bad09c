package models

import (
	"time"

	"github.com/m04kA/RC-FacilityService/internal/domain"
)

// Request модели

// CreateFacilityRequest запрос на создание объекта
type CreateFacilityRequest struct {
	UserID      int64   `json:"userId"`
	ApartmentID int64   `json:"apartmentId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateFacilityRequest запрос на изменение объекта
type UpdateFacilityRequest struct {
	UserID      int64   `json:"userId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CreateInstructorRequest запрос на создание инструктора
type CreateInstructorRequest struct {
	UserID      int64   `json:"userId"`
	FacilityID  int64   `json:"facilityId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Response модели

// FacilityResponse ответ с данными объекта
type FacilityResponse struct {
	ID          int64     `json:"id"`
	ApartmentID int64     `json:"apartmentId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FacilityListResponse список объектов
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	Total      int                `json:"total"`
}

// InstructorResponse ответ с данными инструктора
type InstructorResponse struct {
	ID          int64     `json:"id"`
	FacilityID  int64     `json:"facilityId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InstructorListResponse список инструкторов
type InstructorListResponse struct {
	Instructors []InstructorResponse `json:"instructors"`
	Total       int                  `json:"total"`
}

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID                  int64     `json:"id"`
	InstructorID        int64     `json:"instructorId"`
	FacilityID          int64     `json:"facilityId"`
	DayOfWeek           string    `json:"dayOfWeek"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	Capacity            int       `json:"capacity"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ScheduleListResponse список расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}

// FromDomainFacility конвертирует domain модель в response
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	return &FacilityResponse{
		ID:          f.ID,
		ApartmentID: f.ApartmentID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// FromDomainFacilityList конвертирует список domain моделей в response
func FromDomainFacilityList(facilities []*domain.Facility) *FacilityListResponse {
	result := make([]FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		result = append(result, *FromDomainFacility(f))
	}

	return &FacilityListResponse{
		Facilities: result,
		Total:      len(result),
	}
}

// FromDomainInstructor конвертирует domain модель в response
func FromDomainInstructor(ins *domain.Instructor) *InstructorResponse {
	return &InstructorResponse{
		ID:          ins.ID,
		FacilityID:  ins.FacilityID,
		Name:        ins.Name,
		Description: ins.Description,
		CreatedAt:   ins.CreatedAt,
		UpdatedAt:   ins.UpdatedAt,
	}
}

// FromDomainInstructorList конвертирует список domain моделей в response
func FromDomainInstructorList(instructors []*domain.Instructor) *InstructorListResponse {
	result := make([]InstructorResponse, 0, len(instructors))
	for _, ins := range instructors {
		result = append(result, *FromDomainInstructor(ins))
	}

	return &InstructorListResponse{
		Instructors: result,
		Total:       len(result),
	}
}

// FromDomainSchedule конвертирует domain модель в response
func FromDomainSchedule(s *domain.InstructorSchedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:                  s.ID,
		InstructorID:        s.InstructorID,
		FacilityID:          s.FacilityID,
		DayOfWeek:           string(s.DayOfWeek),
		StartTime:           s.StartTime.String(),
		EndTime:             s.EndTime.String(),
		SlotDurationMinutes: s.SlotDurationMinutes,
		Capacity:            s.Capacity,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в response
func FromDomainScheduleList(schedules []*domain.InstructorSchedule) *ScheduleListResponse {
	result := make([]ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		result = append(result, *FromDomainSchedule(s))
	}

	return &ScheduleListResponse{
		Schedules: result,
		Total:     len(result),
	}
}
