package create_instructor

// CreateInstructorRequest HTTP request model
type CreateInstructorRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
