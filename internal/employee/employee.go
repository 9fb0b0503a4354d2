package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/employee"
)

type Employee struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Grade      string    `json:"grade"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Department: e.Department,
		Grade:      e.Grade,
		Email:      e.Email,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Department: e.Department,
		Grade:      e.Grade,
		Email:      e.Email,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModelSlice(employees []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(employees))
	for i, e := range employees {
		result[i] = FromDataModel(e)
	}
	return result
}
