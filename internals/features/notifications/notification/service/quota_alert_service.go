package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "gradhub_backend/internals/features/notifications/notification/model"
)

// CreateQuotaAlert subscribes a student to slot-availability on a project.
// Idempotent: an existing active alert is returned with created=false.
func (s *NotificationService) CreateQuotaAlert(studentID, projectID uuid.UUID) (*notifModel.QuotaAlertModel, bool, error) {
	var existing notifModel.QuotaAlertModel
	err := s.DB.
		Where("quota_alert_student_id = ? AND quota_alert_project_id = ? AND quota_alert_is_active = ?",
			studentID, projectID, true).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	alert := notifModel.QuotaAlertModel{
		QuotaAlertStudentID: studentID,
		QuotaAlertProjectID: projectID,
		QuotaAlertIsActive:  true,
	}
	if err := s.DB.Create(&alert).Error; err != nil {
		return nil, false, err
	}
	return &alert, true, nil
}

// RemoveQuotaAlert deactivates the student's active alert on a project.
// Returns false when no active alert exists.
func (s *NotificationService) RemoveQuotaAlert(studentID, projectID uuid.UUID) (bool, error) {
	res := s.DB.Model(&notifModel.QuotaAlertModel{}).
		Where("quota_alert_student_id = ? AND quota_alert_project_id = ? AND quota_alert_is_active = ?",
			studentID, projectID, true).
		Update("quota_alert_is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
