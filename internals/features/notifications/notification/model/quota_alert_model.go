package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuotaAlertModel is a one-shot subscription: "tell me when this project's
// application slots free up". Once the matching notification fires the alert
// flips to notified+inactive and the student must re-subscribe.
type QuotaAlertModel struct {
	QuotaAlertID        uuid.UUID `gorm:"column:quota_alert_id;type:uuid;primaryKey" json:"quota_alert_id"`
	QuotaAlertStudentID uuid.UUID `gorm:"column:quota_alert_student_id;type:uuid;not null;index" json:"quota_alert_student_id"`
	QuotaAlertProjectID uuid.UUID `gorm:"column:quota_alert_project_id;type:uuid;not null;index" json:"quota_alert_project_id"`

	QuotaAlertIsActive   bool `gorm:"column:quota_alert_is_active;not null;default:true;index" json:"quota_alert_is_active"`
	QuotaAlertIsNotified bool `gorm:"column:quota_alert_is_notified;not null;default:false" json:"quota_alert_is_notified"`

	QuotaAlertCreatedAt  time.Time  `gorm:"column:quota_alert_created_at;autoCreateTime" json:"quota_alert_created_at"`
	QuotaAlertNotifiedAt *time.Time `gorm:"column:quota_alert_notified_at" json:"quota_alert_notified_at,omitempty"`
}

func (QuotaAlertModel) TableName() string {
	return "project_quota_alerts"
}

func (q *QuotaAlertModel) BeforeCreate(tx *gorm.DB) error {
	if q.QuotaAlertID == uuid.Nil {
		q.QuotaAlertID = uuid.New()
	}
	return nil
}
