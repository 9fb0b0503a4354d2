package permit

import (
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/common/validation"
)

// datetimeLayouts are the accepted submission formats: RFC 3339 from API
// clients and the HTML datetime-local shapes from the form.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func parseDatetime(value string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreatePermitRequestDTO is the submission payload. Datetimes arrive as
// strings and are parsed during validation.
type CreatePermitRequestDTO struct {
	EmployeeID    string `json:"employee_id"`
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
	VehicleType   string `json:"vehicle_type"`
	LicensePlate  string `json:"license_plate"`
}

// Validate collects every field failure instead of stopping at the first,
// so the form can surface all problems at once. It returns the parsed
// window on success.
func (dto CreatePermitRequestDTO) Validate(now time.Time) (start, end time.Time, appErr *internal.AppError) {
	v := validation.NewValidator()

	v.Field("employee_id", dto.EmployeeID).
		Required("Employee ID is required.")

	start, startOK := parseDatetime(dto.StartDatetime)
	end, endOK := parseDatetime(dto.EndDatetime)

	v.Field("start_datetime", dto.StartDatetime).
		Required("Start date and time is required.").
		Custom(func(interface{}) *internal.AppError {
			if dto.StartDatetime != "" && !startOK {
				return internal.NewValidationFieldError("start_datetime", "Start date and time must be a valid date.", internal.ErrCodeInvalidDate)
			}
			return nil
		})
	v.Field("start_datetime", start).
		Future(now, "Start date and time must be in the future.")

	v.Field("end_datetime", dto.EndDatetime).
		Required("End date and time is required.").
		Custom(func(interface{}) *internal.AppError {
			if dto.EndDatetime != "" && !endOK {
				return internal.NewValidationFieldError("end_datetime", "End date and time must be a valid date.", internal.ErrCodeInvalidDate)
			}
			return nil
		})
	v.Field("end_datetime", end).
		After(start, "End date and time must be after start date and time.")

	v.Field("vehicle_type", dto.VehicleType).
		Required("Vehicle type is required.").
		MaxLength(255)
	v.Field("license_plate", dto.LicensePlate).
		Required("License plate number is required.").
		MaxLength(20)

	return start, end, v.Validate()
}

// UpdateStatusDTO is the review payload.
type UpdateStatusDTO struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (dto UpdateStatusDTO) Validate() *internal.AppError {
	if !ValidDecision(dto.Status) {
		return internal.ErrInvalidDecision
	}
	return nil
}

// ListFilters are the optional permit listing predicates; empty values
// impose no constraint and present filters combine by AND.
type ListFilters struct {
	Search     string     `json:"search"`
	Department string     `json:"department"`
	Status     string     `json:"status"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
}
