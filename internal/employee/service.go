package employee

import (
	"log/slog"

	"github.com/frahmantamala/permit-management/internal"
	employeeDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/employee"
)

// DefaultPageSize is the employee listing page size.
const DefaultPageSize = 10

// Repository defines the data access methods for the employee directory.
type Repository interface {
	Create(emp *employeeDatamodel.Employee) error
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error)
	List(filters ListFilters, limit, offset int) ([]*employeeDatamodel.Employee, int64, error)
	Delete(id int64) error
	Departments() ([]string, error)
	ExistsByEmployeeIDOrEmail(employeeID, email string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// FindByEmployeeID resolves the externally visible identifier to a directory
// record. This is the read path the permit submission flow depends on.
func (s *Service) FindByEmployeeID(employeeID string) (*Employee, error) {
	emp, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		s.logger.Warn("employee lookup failed", "employee_id", employeeID, "error", err)
		return nil, err
	}
	return FromDataModel(emp), nil
}

func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	exists, err := s.repo.ExistsByEmployeeIDOrEmail(dto.EmployeeID, dto.Email)
	if err != nil {
		s.logger.Error("employee uniqueness check failed", "error", err)
		return nil, err
	}
	if exists {
		return nil, internal.NewConflictError("employee ID or email already exists", internal.ErrCodeEmployeeExists)
	}

	emp := &employeeDatamodel.Employee{
		EmployeeID: dto.EmployeeID,
		Name:       dto.Name,
		Department: dto.Department,
		Grade:      dto.Grade,
		Email:      dto.Email,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("employee created",
		"id", emp.ID,
		"employee_id", emp.EmployeeID,
		"department", emp.Department)

	return FromDataModel(emp), nil
}

func (s *Service) GetEmployee(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("employee lookup failed", "id", id, "error", err)
		return nil, err
	}
	return FromDataModel(emp), nil
}

// ListEmployees returns one page ordered by name ascending, with the filter
// predicates AND'ed together.
func (s *Service) ListEmployees(filters ListFilters, page int) ([]*Employee, internal.Pagination, error) {
	if page < 1 {
		page = 1
	}
	pagination := internal.Pagination{Page: page, PerPage: DefaultPageSize}

	employees, total, err := s.repo.List(filters, DefaultPageSize, pagination.Offset())
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, pagination, err
	}

	return FromDataModelSlice(employees), internal.NewPagination(page, DefaultPageSize, total), nil
}

func (s *Service) DeleteEmployee(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "id", id)
		return err
	}
	s.logger.Info("employee deleted", "id", id)
	return nil
}

// Departments returns the distinct sorted department list used to populate
// the listing filter dropdowns.
func (s *Service) Departments() ([]string, error) {
	departments, err := s.repo.Departments()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}
	return departments, nil
}
