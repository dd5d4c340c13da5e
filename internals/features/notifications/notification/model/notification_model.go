package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationModel is the append-only per-user notification log. Rows are
// created only by the notification service and mutated only by the owning
// user (read/delete).
type NotificationModel struct {
	NotificationID     uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationUserID uuid.UUID `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`

	NotificationType    string `gorm:"column:notification_type;type:varchar(40);not null;index" json:"notification_type"`
	NotificationTitle   string `gorm:"column:notification_title;size:200;not null" json:"notification_title"`
	NotificationMessage string `gorm:"column:notification_message;type:text;not null" json:"notification_message"`

	NotificationProjectID     *uuid.UUID `gorm:"column:notification_project_id;type:uuid;index" json:"notification_project_id,omitempty"`
	NotificationApplicationID *uuid.UUID `gorm:"column:notification_application_id;type:uuid" json:"notification_application_id,omitempty"`

	NotificationIsRead      bool `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`
	NotificationIsEmailSent bool `gorm:"column:notification_is_email_sent;not null;default:false" json:"notification_is_email_sent"`

	// per-type extras (days_left, slot counts)
	NotificationMetadata datatypes.JSON `gorm:"column:notification_metadata" json:"notification_metadata,omitempty"`

	NotificationCreatedAt time.Time  `gorm:"column:notification_created_at;autoCreateTime;index" json:"notification_created_at"`
	NotificationReadAt    *time.Time `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
