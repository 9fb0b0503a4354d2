package postgres

import (
	"strings"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/datamodel/permit"
	permitDomain "github.com/frahmantamala/permit-management/internal/permit"
	"gorm.io/gorm"
)

// PermitRequestRepository implements the permit.Repository interface using GORM
type PermitRequestRepository struct {
	db *gorm.DB
}

func NewPermitRequestRepository(db *gorm.DB) permitDomain.Repository {
	return &PermitRequestRepository{db: db}
}

func (r *PermitRequestRepository) Create(req *permit.PermitRequest) error {
	return r.db.Create(req).Error
}

func (r *PermitRequestRepository) GetByID(id int64) (*permit.PermitRequest, error) {
	var req permit.PermitRequest
	err := r.db.
		Preload("Employee").
		Preload("Reviewer").
		Where("permit_requests.id = ?", id).
		First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrPermitNotFound
		}
		return nil, err
	}
	return &req, nil
}

// employeeSearchScope matches the search text against the joined employee's
// name or external identifier. Matching is case-insensitive; both sides are
// lowered because LIKE is case-sensitive on postgres.
func employeeSearchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		return db.Where("LOWER(employees.name) LIKE ? OR LOWER(employees.employee_id) LIKE ?", pattern, pattern)
	}
}

func employeeDepartmentScope(department string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if department == "" {
			return db
		}
		return db.Where("employees.department = ?", department)
	}
}

func statusScope(status string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("permit_requests.status = ?", status)
	}
}

func dateWindowScope(from, to *time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("permit_requests.start_datetime >= ?", *from)
		}
		if to != nil {
			db = db.Where("permit_requests.end_datetime <= ?", *to)
		}
		return db
	}
}

// List returns one page newest-created-first with employee and reviewer
// joined, plus the total row count for the unpaginated filter set.
func (r *PermitRequestRepository) List(filters permitDomain.ListFilters, limit, offset int) ([]*permit.PermitRequest, int64, error) {
	query := r.db.Model(&permit.PermitRequest{}).
		Joins("JOIN employees ON employees.id = permit_requests.employee_id").
		Scopes(
			employeeSearchScope(filters.Search),
			employeeDepartmentScope(filters.Department),
			statusScope(filters.Status),
			dateWindowScope(filters.DateFrom, filters.DateTo),
		)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []*permit.PermitRequest
	err := query.
		Preload("Employee").
		Preload("Reviewer").
		Order("permit_requests.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// UpdateReview writes the status transition as one atomic update: status,
// notes, reviewer and reviewed-at always change together.
func (r *PermitRequestRepository) UpdateReview(id int64, status string, notes *string, reviewerID int64, reviewedAt time.Time) error {
	return r.db.Model(&permit.PermitRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"notes":       notes,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
			"updated_at":  time.Now(),
		}).Error
}

func (r *PermitRequestRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&permit.PermitRequest{}).Error
}
