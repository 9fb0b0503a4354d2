package permit

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	permitDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/permit"
	"github.com/frahmantamala/permit-management/internal/core/events"
	employeeDomain "github.com/frahmantamala/permit-management/internal/employee"
)

// DefaultPageSize is the permit request listing page size.
const DefaultPageSize = 15

// Repository defines the data access methods for permit requests. Reads
// return rows with the employee and reviewer joined.
type Repository interface {
	Create(req *permitDatamodel.PermitRequest) error
	GetByID(id int64) (*permitDatamodel.PermitRequest, error)
	List(filters ListFilters, limit, offset int) ([]*permitDatamodel.PermitRequest, int64, error)
	UpdateReview(id int64, status string, notes *string, reviewerID int64, reviewedAt time.Time) error
	Delete(id int64) error
}

// Directory is the employee lookup the submission flow resolves against.
type Directory interface {
	FindByEmployeeID(employeeID string) (*employeeDomain.Employee, error)
	Departments() ([]string, error)
}

type Service struct {
	repo      Repository
	directory Directory
	eventBus  *events.EventBus
	logger    *slog.Logger
}

func NewService(repo Repository, directory Directory, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// CreatePermitRequest validates the submission, resolves the employee and
// persists the request in the pending state. The HR notification fan-out is
// triggered through the event bus after the insert commits; a fan-out
// failure never unwinds the created request.
func (s *Service) CreatePermitRequest(dto CreatePermitRequestDTO) (*PermitRequest, error) {
	start, end, appErr := dto.Validate(time.Now())

	var emp *employeeDomain.Employee
	if dto.EmployeeID != "" {
		var err error
		emp, err = s.directory.FindByEmployeeID(dto.EmployeeID)
		if err != nil {
			if !errors.Is(err, internal.ErrEmployeeNotFound) {
				s.logger.Error("employee lookup failed", "error", err, "employee_id", dto.EmployeeID)
				return nil, err
			}
			appErr = appendFieldError(appErr, internal.ValidationError{
				Field:   "employee_id",
				Message: "Employee ID not found in the system.",
				Code:    string(internal.ErrCodeUnknownEmployee),
			})
		}
	}

	if appErr != nil {
		s.logger.Warn("permit request validation failed",
			"employee_id", dto.EmployeeID,
			"error", appErr.GetDetailedMessage())
		return nil, appErr
	}

	req := &permitDatamodel.PermitRequest{
		EmployeeID:    emp.ID,
		StartDatetime: start,
		EndDatetime:   end,
		VehicleType:   dto.VehicleType,
		LicensePlate:  strings.ToUpper(dto.LicensePlate),
		Status:        StatusPending,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create permit request", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	s.logger.Info("permit request created",
		"permit_request_id", req.ID,
		"employee_id", emp.EmployeeID,
		"vehicle_type", req.VehicleType,
		"status", req.Status)

	event := events.NewPermitRequestCreatedEvent(req.ID, emp.Name, emp.Department, req.VehicleType)
	if err := s.eventBus.PublishSync(context.Background(), event); err != nil {
		// best-effort: the request is already committed
		s.logger.Error("notification fan-out failed", "error", err, "permit_request_id", req.ID)
	}

	created := FromDataModel(req)
	created.Employee = emp
	return created, nil
}

func (s *Service) GetPermitRequest(id int64) (*PermitRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("permit request lookup failed", "id", id, "error", err)
		return nil, err
	}
	return FromDataModel(req), nil
}

// ListPermitRequests returns one page newest-created-first, with the
// optional filters AND'ed together.
func (s *Service) ListPermitRequests(filters ListFilters, page int) ([]*PermitRequest, internal.Pagination, error) {
	if page < 1 {
		page = 1
	}
	pagination := internal.Pagination{Page: page, PerPage: DefaultPageSize}

	requests, total, err := s.repo.List(filters, DefaultPageSize, pagination.Offset())
	if err != nil {
		s.logger.Error("failed to list permit requests", "error", err)
		return nil, pagination, err
	}

	return FromDataModelSlice(requests), internal.NewPagination(page, DefaultPageSize, total), nil
}

// Review applies the pending → approved/rejected transition. Status, notes,
// reviewer and reviewed-at are written together; requests already decided
// cannot be reviewed again.
func (s *Service) Review(id int64, dto UpdateStatusDTO, reviewerID int64) (*PermitRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("invalid review decision", "id", id, "status", dto.Status)
		return nil, err
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("permit request lookup failed for review", "id", id, "error", err)
		return nil, err
	}

	current := FromDataModel(req)
	if !current.CanBeReviewed() {
		s.logger.Warn("permit request already reviewed",
			"id", id,
			"current_status", current.Status)
		return nil, internal.ErrAlreadyReviewed
	}

	reviewedAt := time.Now()
	if err := s.repo.UpdateReview(id, dto.Status, dto.Notes, reviewerID, reviewedAt); err != nil {
		s.logger.Error("failed to update permit request status", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("permit request reviewed",
		"permit_request_id", id,
		"status", dto.Status,
		"reviewer_id", reviewerID)

	// TODO: notify the employee of the decision once employee accounts exist
	// (status_update notification type is reserved for this).

	updated, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(updated), nil
}

func (s *Service) DeletePermitRequest(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete permit request", "error", err, "id", id)
		return err
	}
	s.logger.Info("permit request deleted", "id", id)
	return nil
}

// Departments exposes the directory's distinct department list for the
// listing filter dropdown.
func (s *Service) Departments() ([]string, error) {
	return s.directory.Departments()
}

// appendFieldError merges one more field failure into an existing collected
// validation error, creating the envelope when validation had otherwise
// passed.
func appendFieldError(appErr *internal.AppError, fieldErr internal.ValidationError) *internal.AppError {
	if appErr == nil {
		return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{fieldErr}})
	}
	if details, ok := appErr.Details.(internal.ValidationErrors); ok {
		details.Errors = append(details.Errors, fieldErr)
		appErr.Details = details
		return appErr
	}
	return appErr.WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{fieldErr}})
}
