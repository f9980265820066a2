// internal/model/notification.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message created by the fan-out pipeline when a
// deal changes status. Only the recipient may flip the read flag.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_notifications_recipient_read" json:"recipient_id"`
	ChangedByID *uuid.UUID `gorm:"type:uuid;index" json:"changed_by_id,omitempty"`
	Verb        string     `gorm:"type:text;not null" json:"verb"`
	Description string     `gorm:"type:text" json:"description"`
	Read        bool       `gorm:"not null;default:false;index:idx_notifications_recipient_read" json:"read"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`

	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
	ChangedBy *User `gorm:"foreignKey:ChangedByID" json:"-"`
}
