package create_facility

// CreateFacilityRequest HTTP request model
type CreateFacilityRequest struct {
	ApartmentID int64   `json:"apartmentId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
