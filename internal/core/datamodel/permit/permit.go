package permit

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/employee"
	userDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/user"
)

// PermitRequest is one employee's request to use a company vehicle for a
// bounded time window, subject to HR review.
type PermitRequest struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	EmployeeID    int64      `json:"employee_id" gorm:"column:employee_id;not null"`
	StartDatetime time.Time  `json:"start_datetime" gorm:"column:start_datetime;not null"`
	EndDatetime   time.Time  `json:"end_datetime" gorm:"column:end_datetime;not null"`
	VehicleType   string     `json:"vehicle_type" gorm:"column:vehicle_type;not null"`
	LicensePlate  string     `json:"license_plate" gorm:"column:license_plate;not null"`
	Status        string     `json:"status" gorm:"default:pending"`
	Notes         *string    `json:"notes,omitempty"`
	ReviewedBy    *int64     `json:"reviewed_by,omitempty" gorm:"column:reviewed_by"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`

	Employee *employeeDatamodel.Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Reviewer *userDatamodel.User         `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy"`
}

func (PermitRequest) TableName() string {
	return "permit_requests"
}
