package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/permit-management/internal/core/events"
)

// EventHandler subscribes the notification fan-out to permit request
// creation events.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) HandlePermitRequestCreated(ctx context.Context, event events.Event) error {
	createdEvent, ok := event.(*events.PermitRequestCreatedEvent)
	if !ok {
		h.logger.Error("invalid event type for permit request created handler", "event_type", event.EventType())
		return fmt.Errorf("expected PermitRequestCreatedEvent, got %T", event)
	}

	h.logger.Info("handling permit request created event",
		"permit_request_id", createdEvent.PermitRequestID,
		"employee_name", createdEvent.EmployeeName,
		"event_id", createdEvent.EventID())

	return h.service.FanOutPermitRequestCreated(
		createdEvent.PermitRequestID,
		createdEvent.EmployeeName,
		createdEvent.EmployeeDepartment,
		createdEvent.VehicleType,
	)
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePermitRequestCreated, h.HandlePermitRequestCreated)

	h.logger.Info("notification event handlers registered",
		"handlers", []string{events.EventTypePermitRequestCreated})
}
