package notification

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/notification"
)

type Notification struct {
	ID        int64                  `json:"id"`
	UserID    int64                  `json:"user_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Read      bool                   `json:"read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func FromDataModel(n *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      n.Data,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func FromDataModelSlice(notifications []*notificationDatamodel.Notification) []*Notification {
	result := make([]*Notification, len(notifications))
	for i, n := range notifications {
		result[i] = FromDataModel(n)
	}
	return result
}
