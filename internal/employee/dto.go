package employee

import (
	errors "github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/common/validation"
)

// CreateEmployeeDTO is the payload for adding a directory record.
type CreateEmployeeDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
	Email      string `json:"email"`
}

func (dto CreateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).
		Required("Employee ID is required.").
		MaxLength(255)
	v.Field("name", dto.Name).
		Required("Name is required.").
		MaxLength(255)
	v.Field("department", dto.Department).
		Required("Department is required.").
		MaxLength(255)
	v.Field("grade", dto.Grade).
		Required("Grade is required.").
		MaxLength(255)
	v.Field("email", dto.Email).
		Required("Email is required.").
		MaxLength(255)
	return v.Validate()
}

// ListFilters are the optional employee listing predicates. Empty values
// impose no constraint.
type ListFilters struct {
	Search     string `json:"search"`
	Department string `json:"department"`
}
