// models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is device-local; it never round-trips to the backend.
type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Body       string    `gorm:"type:text" json:"body"`
	Data       JSONB     `gorm:"type:jsonb" json:"data,omitempty"`
	BookingID  string    `gorm:"type:varchar(64);index" json:"bookingId,omitempty"` // set for reminders
	Read       bool      `gorm:"default:false" json:"read"`
	ReceivedAt time.Time `gorm:"index" json:"receivedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.ReceivedAt.IsZero() {
		n.ReceivedAt = time.Now()
	}
	return
}

// DeviceEntry is one key of the device key-value store.
type DeviceEntry struct {
	Key       string `gorm:"type:varchar(64);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
