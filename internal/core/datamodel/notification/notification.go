package notification

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	TypePermitRequest = "permit_request"
	TypeStatusUpdate  = "status_update"
)

// JSONMap stores the free-form notification payload as a JSON column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}

// Notification is one in-app message for one recipient.
type Notification struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id" gorm:"column:user_id;not null"`
	Title     string     `json:"title" gorm:"not null"`
	Message   string     `json:"message" gorm:"not null"`
	Type      string     `json:"type" gorm:"not null"`
	Data      JSONMap    `json:"data,omitempty" gorm:"type:jsonb"`
	Read      bool       `json:"read" gorm:"default:false"`
	ReadAt    *time.Time `json:"read_at,omitempty" gorm:"column:read_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Notification) TableName() string {
	return "notifications"
}
