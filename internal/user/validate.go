package user

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterInput carries the registration form fields. Validation runs
// before any catalog work so malformed requests never touch the store.
type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	StudentID       string `json:"student_id" validate:"required,numeric,max=10"`
	EnrollmentYear  int    `json:"enrollment_year" validate:"required,gte=2000,lte=2100"`
	School          string `json:"school" validate:"required"`
	Major           string `json:"major" validate:"required"`
	Target          string `json:"target"`
	CurrentSemester int    `json:"current_semester" validate:"required,gte=1,lte=8"`
}

// Validate checks the input against its field constraints.
func (in RegisterInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid registration input: %w", err)
	}
	return nil
}
