package notification

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	notificationDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/notification"
	userDomain "github.com/frahmantamala/permit-management/internal/user"
)

// DefaultPageSize is the notification listing page size.
const DefaultPageSize = 20

// Repository defines the data access methods for notifications.
type Repository interface {
	Create(n *notificationDatamodel.Notification) error
	GetByID(id int64) (*notificationDatamodel.Notification, error)
	ListByUser(userID int64, limit, offset int) ([]*notificationDatamodel.Notification, int64, error)
	MarkRead(id int64, readAt time.Time) error
	MarkAllRead(userID int64, readAt time.Time) error
	CountUnread(userID int64) (int64, error)
}

// RecipientSource resolves the HR users who receive submission
// notifications.
type RecipientSource interface {
	HRUsers() ([]*userDomain.User, error)
}

type Service struct {
	repo       Repository
	recipients RecipientSource
	logger     *slog.Logger
}

func NewService(repo Repository, recipients RecipientSource, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		recipients: recipients,
		logger:     logger,
	}
}

// FanOutPermitRequestCreated creates one notification per HR user for a
// freshly submitted permit request. Per-recipient write failures are logged
// and skipped; the triggering request is already committed and is never
// rolled back from here.
func (s *Service) FanOutPermitRequestCreated(permitRequestID int64, employeeName, employeeDepartment, vehicleType string) error {
	recipients, err := s.recipients.HRUsers()
	if err != nil {
		s.logger.Error("failed to resolve HR recipients", "error", err, "permit_request_id", permitRequestID)
		return err
	}

	message := fmt.Sprintf("New permit request from %s (%s)", employeeName, employeeDepartment)
	created := 0
	for _, recipient := range recipients {
		n := &notificationDatamodel.Notification{
			UserID:  recipient.ID,
			Title:   "New Vehicle Permit Request",
			Message: message,
			Type:    notificationDatamodel.TypePermitRequest,
			Data: notificationDatamodel.JSONMap{
				"permit_request_id":   permitRequestID,
				"employee_name":       employeeName,
				"employee_department": employeeDepartment,
				"vehicle_type":        vehicleType,
			},
		}
		if err := s.repo.Create(n); err != nil {
			s.logger.Error("failed to create notification",
				"error", err,
				"recipient_id", recipient.ID,
				"permit_request_id", permitRequestID)
			continue
		}
		created++
	}

	s.logger.Info("permit request notifications fanned out",
		"permit_request_id", permitRequestID,
		"recipients", len(recipients),
		"created", created)

	return nil
}

// ListNotifications returns one page of the user's own notifications,
// newest first.
func (s *Service) ListNotifications(userID int64, page int) ([]*Notification, internal.Pagination, error) {
	if page < 1 {
		page = 1
	}
	pagination := internal.Pagination{Page: page, PerPage: DefaultPageSize}

	notifications, total, err := s.repo.ListByUser(userID, DefaultPageSize, pagination.Offset())
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "user_id", userID)
		return nil, pagination, err
	}

	return FromDataModelSlice(notifications), internal.NewPagination(page, DefaultPageSize, total), nil
}

// MarkRead flags one notification as read. Only the owner may do so;
// re-marking an already-read notification is a harmless duplicate write.
func (s *Service) MarkRead(id, requestingUserID int64) error {
	n, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("notification lookup failed", "id", id, "error", err)
		return err
	}

	if n.UserID != requestingUserID {
		s.logger.Warn("notification ownership violation",
			"notification_id", id,
			"owner_id", n.UserID,
			"requesting_user_id", requestingUserID)
		return internal.ErrNotOwnNotification
	}

	if err := s.repo.MarkRead(id, time.Now()); err != nil {
		s.logger.Error("failed to mark notification read", "error", err, "id", id)
		return err
	}
	return nil
}

// MarkAllRead flags every unread notification owned by the user.
func (s *Service) MarkAllRead(userID int64) error {
	if err := s.repo.MarkAllRead(userID, time.Now()); err != nil {
		s.logger.Error("failed to mark all notifications read", "error", err, "user_id", userID)
		return err
	}
	return nil
}

func (s *Service) UnreadCount(userID int64) (int64, error) {
	count, err := s.repo.CountUnread(userID)
	if err != nil {
		s.logger.Error("failed to count unread notifications", "error", err, "user_id", userID)
		return 0, err
	}
	return count, nil
}
