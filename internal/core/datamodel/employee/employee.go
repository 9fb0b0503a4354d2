package employee

import "time"

// Employee is the directory record resolved from the human-entered
// employee identifier on the submission form.
type Employee struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID string    `json:"employee_id" gorm:"column:employee_id;uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"not null"`
	Department string    `json:"department" gorm:"not null"`
	Grade      string    `json:"grade" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Employee) TableName() string {
	return "employees"
}
