package postgres

import (
	"strings"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/datamodel/employee"
	employeeDomain "github.com/frahmantamala/permit-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employeeDomain.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByEmployeeID(employeeID string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("employee_id = ?", employeeID).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// searchScope matches the search text against name, employee_id or email as
// one OR'd condition. Matching is case-insensitive; both sides are lowered
// because LIKE is case-sensitive on postgres.
func searchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		return db.Where("LOWER(name) LIKE ? OR LOWER(employee_id) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}
}

func departmentScope(department string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if department == "" {
			return db
		}
		return db.Where("department = ?", department)
	}
}

// List returns one page ordered by name, plus the total row count for the
// unpaginated filter set.
func (r *EmployeeRepository) List(filters employeeDomain.ListFilters, limit, offset int) ([]*employee.Employee, int64, error) {
	query := r.db.Model(&employee.Employee{}).
		Scopes(searchScope(filters.Search), departmentScope(filters.Department))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employee.Employee
	err := query.
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&employee.Employee{}).Error
}

func (r *EmployeeRepository) Departments() ([]string, error) {
	var departments []string
	err := r.db.Model(&employee.Employee{}).
		Distinct("department").
		Order("department ASC").
		Pluck("department", &departments).Error
	return departments, err
}

func (r *EmployeeRepository) ExistsByEmployeeIDOrEmail(employeeID, email string) (bool, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).
		Where("employee_id = ? OR email = ?", employeeID, email).
		Count(&count).Error
	return count > 0, err
}
