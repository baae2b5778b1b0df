package types

import "github.com/go-playground/validator/v10"

// Experience is a work history entry. The API identifies it by its position
// in the list, so indexes are only meaningful against the latest read.
type Experience struct {
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location,omitempty"`
	Role        string `json:"role" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Description string `json:"description"`
}

// Project is a personal project entry, addressed by position like Experience.
type Project struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// Validate checks the fields the edit forms require before submission.
func (e *Experience) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Validate checks the fields the edit forms require before submission.
func (p *Project) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
