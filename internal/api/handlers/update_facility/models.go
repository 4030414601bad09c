package update_facility

// UpdateFacilityRequest HTTP request model
type UpdateFacilityRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
