package permit

import (
	"time"

	permitDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/permit"
	employeeDomain "github.com/frahmantamala/permit-management/internal/employee"
)

// Permit request lifecycle states. Pending is the only reviewable state;
// approved and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Reviewer is the HR user who decided a request, joined onto reads.
type Reviewer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PermitRequest struct {
	ID            int64      `json:"id"`
	EmployeeID    int64      `json:"employee_id"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   time.Time  `json:"end_datetime"`
	VehicleType   string     `json:"vehicle_type"`
	LicensePlate  string     `json:"license_plate"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes,omitempty"`
	ReviewedBy    *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Employee *employeeDomain.Employee `json:"employee,omitempty"`
	Reviewer *Reviewer                `json:"reviewer,omitempty"`
}

// CanBeReviewed reports whether the review transition is still permitted.
func (p *PermitRequest) CanBeReviewed() bool {
	return p.Status == StatusPending
}

func (p *PermitRequest) IsPending() bool {
	return p.Status == StatusPending
}

// ValidDecision reports whether status is a legal review outcome.
func ValidDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func FromDataModel(p *permitDatamodel.PermitRequest) *PermitRequest {
	req := &PermitRequest{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		StartDatetime: p.StartDatetime,
		EndDatetime:   p.EndDatetime,
		VehicleType:   p.VehicleType,
		LicensePlate:  p.LicensePlate,
		Status:        p.Status,
		Notes:         p.Notes,
		ReviewedBy:    p.ReviewedBy,
		ReviewedAt:    p.ReviewedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Employee != nil {
		req.Employee = employeeDomain.FromDataModel(p.Employee)
	}
	if p.Reviewer != nil {
		req.Reviewer = &Reviewer{
			ID:    p.Reviewer.ID,
			Name:  p.Reviewer.Name,
			Email: p.Reviewer.Email,
		}
	}
	return req
}

func FromDataModelSlice(requests []*permitDatamodel.PermitRequest) []*PermitRequest {
	result := make([]*PermitRequest, len(requests))
	for i, p := range requests {
		result[i] = FromDataModel(p)
	}
	return result
}
