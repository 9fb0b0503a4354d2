package postgres

import (
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/datamodel/notification"
	notificationDomain "github.com/frahmantamala/permit-management/internal/notification"
	"gorm.io/gorm"
)

// NotificationRepository implements the notification.Repository interface using GORM
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notificationDomain.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetByID(id int64) (*notification.Notification, error) {
	var n notification.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(userID int64, limit, offset int) ([]*notification.Notification, int64, error) {
	query := r.db.Model(&notification.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []*notification.Notification
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepository) MarkRead(id int64, readAt time.Time) error {
	return r.db.Model(&notification.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"read":       true,
			"read_at":    readAt,
			"updated_at": time.Now(),
		}).Error
}

// MarkAllRead only touches the caller's unread rows.
func (r *NotificationRepository) MarkAllRead(userID int64, readAt time.Time) error {
	return r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{
			"read":       true,
			"read_at":    readAt,
			"updated_at": time.Now(),
		}).Error
}

func (r *NotificationRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&notification.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
