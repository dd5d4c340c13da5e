package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
	notifModel "gradhub_backend/internals/features/notifications/notification/model"
	applicationModel "gradhub_backend/internals/features/projects/application/model"
	projectModel "gradhub_backend/internals/features/projects/project/model"
	userModel "gradhub_backend/internals/features/users/user/model"
)

// RunChecks executes one poll cycle: quota alerts, then both deadline
// evaluations. Each routine's error is logged and the cycle continues, a
// failed check must never starve the others.
func (s *NotificationService) RunChecks() {
	now := s.Now()

	if err := s.CheckAndNotifyQuotaAlerts(now); err != nil {
		log.Printf("[SCHEDULER ERROR] quota alerts: %v", err)
	}
	if err := s.CheckApplicationDeadlines(now); err != nil {
		log.Printf("[SCHEDULER ERROR] application deadlines: %v", err)
	}
	if err := s.CheckReviewDeadlines(now); err != nil {
		log.Printf("[SCHEDULER ERROR] review deadlines: %v", err)
	}
}

// CheckAndNotifyQuotaAlerts fires every active, un-notified alert whose
// project has dropped below its application ceiling since the subscription.
// Alerts are one-shot: once fired the student must re-subscribe. "notified"
// means attempted, there is no delivery confirmation.
func (s *NotificationService) CheckAndNotifyQuotaAlerts(now time.Time) error {
	var alerts []notifModel.QuotaAlertModel
	if err := s.DB.
		Where("quota_alert_is_active = ? AND quota_alert_is_notified = ?", true, false).
		Find(&alerts).Error; err != nil {
		return err
	}

	for _, alert := range alerts {
		var project projectModel.ProjectModel
		if err := s.DB.Where("project_id = ?", alert.QuotaAlertProjectID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// project deleted since the subscription: retire the alert so
				// it stops coming back every cycle
				if err := s.DB.Model(&notifModel.QuotaAlertModel{}).
					Where("quota_alert_id = ?", alert.QuotaAlertID).
					Update("quota_alert_is_active", false).Error; err != nil {
					log.Printf("[SCHEDULER] quota alert %s: retire: %v", alert.QuotaAlertID, err)
				}
				continue
			}
			log.Printf("[SCHEDULER] quota alert %s: project lookup: %v", alert.QuotaAlertID, err)
			continue
		}

		var currentApplications int64
		if err := s.DB.Model(&applicationModel.ApplicationModel{}).
			Where("application_project_id = ? AND application_status IN ?",
				project.ProjectID,
				[]applicationModel.ApplicationStatus{applicationModel.StatusPending, applicationModel.StatusApproved}).
			Count(&currentApplications).Error; err != nil {
			log.Printf("[SCHEDULER] quota alert %s: count: %v", alert.QuotaAlertID, err)
			continue
		}

		if int(currentApplications) >= project.MaxApplications() {
			// still full, leave the alert for the next cycle
			continue
		}

		meta, _ := json.Marshal(map[string]interface{}{
			"current_applications": currentApplications,
			"max_applications":     project.MaxApplications(),
		})

		projectID := project.ProjectID
		_, err := s.CreateNotification(CreateNotificationInput{
			UserID:    alert.QuotaAlertStudentID,
			Type:      constants.NotificationTypeQuotaAvailable,
			Title:     "A slot opened up on " + project.ProjectTitle,
			Message:   fmt.Sprintf("An application slot is now available on the project %q. Apply before it fills up again.", project.ProjectTitle),
			ProjectID: &projectID,
			Metadata:  datatypes.JSON(meta),
			CreatedAt: now,
		})
		if err != nil {
			log.Printf("[SCHEDULER] quota alert %s: notify: %v", alert.QuotaAlertID, err)
			continue
		}

		if err := s.DB.Model(&notifModel.QuotaAlertModel{}).
			Where("quota_alert_id = ?", alert.QuotaAlertID).
			Updates(map[string]interface{}{
				"quota_alert_is_notified": true,
				"quota_alert_is_active":   false,
				"quota_alert_notified_at": now,
			}).Error; err != nil {
			log.Printf("[SCHEDULER] quota alert %s: flip: %v", alert.QuotaAlertID, err)
		}
	}

	return nil
}

// CheckApplicationDeadlines warns students who still have no pending or
// approved application while the application deadline is at most 7 days out.
func (s *NotificationService) CheckApplicationDeadlines(now time.Time) error {
	deadline, found, err := s.Settings.GetTime(constants.SettingApplicationDeadline)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	daysLeft := floorDays(deadline.Sub(now))
	if daysLeft < 0 || daysLeft > 7 {
		return nil
	}

	var students []userModel.UserModel
	if err := s.DB.
		Where("user_role = ? AND user_is_active = ?", constants.RoleStudent, true).
		Where("NOT EXISTS (SELECT 1 FROM project_applications pa WHERE pa.application_student_id = users.user_id AND pa.application_status IN (?, ?))",
			applicationModel.StatusPending, applicationModel.StatusApproved).
		Find(&students).Error; err != nil {
		return err
	}

	title, message := applicationDeadlineWording(daysLeft)
	meta, _ := json.Marshal(map[string]interface{}{"days_left": daysLeft})

	for _, student := range students {
		already, err := s.hasNotificationToday(student.UserID, constants.NotificationTypeDeadlineWarning, now)
		if err != nil {
			log.Printf("[SCHEDULER] deadline warning user=%s: %v", student.UserID, err)
			continue
		}
		if already {
			continue
		}

		if _, err := s.CreateNotification(CreateNotificationInput{
			UserID:    student.UserID,
			Type:      constants.NotificationTypeDeadlineWarning,
			Title:     title,
			Message:   message,
			Metadata:  datatypes.JSON(meta),
			CreatedAt: now,
		}); err != nil {
			log.Printf("[SCHEDULER] deadline warning user=%s: %v", student.UserID, err)
		}
	}

	return nil
}

// CheckReviewDeadlines warns teachers who still own pending applications
// while the review deadline is at most 7 days out.
func (s *NotificationService) CheckReviewDeadlines(now time.Time) error {
	deadline, found, err := s.Settings.GetTime(constants.SettingReviewDeadline)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	daysLeft := floorDays(deadline.Sub(now))
	if daysLeft < 0 || daysLeft > 7 {
		return nil
	}

	var teachers []userModel.UserModel
	if err := s.DB.
		Where("user_role = ? AND user_is_active = ?", constants.RoleTeacher, true).
		Where("EXISTS (SELECT 1 FROM projects p JOIN project_applications pa ON pa.application_project_id = p.project_id WHERE p.project_teacher_id = users.user_id AND p.project_deleted_at IS NULL AND pa.application_status = ?)",
			applicationModel.StatusPending).
		Find(&teachers).Error; err != nil {
		return err
	}

	title, message := reviewDeadlineWording(daysLeft)
	meta, _ := json.Marshal(map[string]interface{}{"days_left": daysLeft})

	for _, teacher := range teachers {
		already, err := s.hasNotificationToday(teacher.UserID, constants.NotificationTypeReviewWarning, now)
		if err != nil {
			log.Printf("[SCHEDULER] review warning user=%s: %v", teacher.UserID, err)
			continue
		}
		if already {
			continue
		}

		if _, err := s.CreateNotification(CreateNotificationInput{
			UserID:    teacher.UserID,
			Type:      constants.NotificationTypeReviewWarning,
			Title:     title,
			Message:   message,
			Metadata:  datatypes.JSON(meta),
			CreatedAt: now,
		}); err != nil {
			log.Printf("[SCHEDULER] review warning user=%s: %v", teacher.UserID, err)
		}
	}

	return nil
}

func applicationDeadlineWording(daysLeft int) (title, message string) {
	if daysLeft == 0 {
		return "Application deadline is today",
			"Today is the last day to apply to a graduation project. Choose a project before the deadline passes."
	}
	return fmt.Sprintf("Application deadline: %d day(s) left", daysLeft),
		fmt.Sprintf("You have not applied to a graduation project yet. %d day(s) left until the application deadline.", daysLeft)
}

func reviewDeadlineWording(daysLeft int) (title, message string) {
	if daysLeft == 0 {
		return "Review deadline is today",
			"Today is the last day to review pending applications on your projects."
	}
	return fmt.Sprintf("Review deadline: %d day(s) left", daysLeft),
		fmt.Sprintf("You have pending applications waiting for review. %d day(s) left until the review deadline.", daysLeft)
}

func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
