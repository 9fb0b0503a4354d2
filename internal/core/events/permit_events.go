package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypePermitRequestCreated = "permit_request.created"

// PermitRequestCreatedEvent is published after a permit request commits so
// HR notifications can fan out without coupling the submission path to the
// notification store.
type PermitRequestCreatedEvent struct {
	BaseEvent
	PermitRequestID    int64
	EmployeeName       string
	EmployeeDepartment string
	VehicleType        string
}

func NewPermitRequestCreatedEvent(permitRequestID int64, employeeName, employeeDepartment, vehicleType string) *PermitRequestCreatedEvent {
	return &PermitRequestCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermitRequestCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"permit_request_id":   permitRequestID,
				"employee_name":       employeeName,
				"employee_department": employeeDepartment,
				"vehicle_type":        vehicleType,
			},
		},
		PermitRequestID:    permitRequestID,
		EmployeeName:       employeeName,
		EmployeeDepartment: employeeDepartment,
		VehicleType:        vehicleType,
	}
}
