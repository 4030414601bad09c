package domain

import "time"

// Facility объект инфраструктуры жилого комплекса, доступный для бронирования
// (спортзал, бассейн, комната для занятий и т.п.)
type Facility struct {
	ID          int64
	ApartmentID int64 // ID жилого комплекса, которому принадлежит объект
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Instructor инструктор, ведущий занятия на объекте
type Instructor struct {
	ID          int64
	FacilityID  int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
