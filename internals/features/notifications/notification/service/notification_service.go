package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	notifModel "gradhub_backend/internals/features/notifications/notification/model"
	settingsService "gradhub_backend/internals/features/settings/service"
	userModel "gradhub_backend/internals/features/users/user/model"
	"gradhub_backend/internals/mailer"
)

// NotificationService creates notification records and triggers their emails,
// and hosts the background evaluations run by the scheduler. The record is
// the authoritative side effect: email failures are logged and swallowed.
type NotificationService struct {
	DB       *gorm.DB
	Mailer   mailer.Mailer
	Settings *settingsService.SettingsService

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewNotificationService(db *gorm.DB, m mailer.Mailer) *NotificationService {
	return &NotificationService{
		DB:       db,
		Mailer:   m,
		Settings: settingsService.NewSettingsService(db),
		Now:      time.Now,
	}
}

type CreateNotificationInput struct {
	UserID        uuid.UUID
	Type          string
	Title         string
	Message       string
	ProjectID     *uuid.UUID
	ApplicationID *uuid.UUID
	Metadata      datatypes.JSON

	// CreatedAt overrides the stored timestamp. The background checks set it
	// to their evaluation time so the once-per-day guard and the stamp agree
	// on what "today" is. Zero means the service clock.
	CreatedAt time.Time
}

// CreateNotification persists the record, then attempts the matching email.
// The row always persists even when delivery fails.
func (s *NotificationService) CreateNotification(in CreateNotificationInput) (*notifModel.NotificationModel, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.Now()
	}

	row := notifModel.NotificationModel{
		NotificationUserID:        in.UserID,
		NotificationType:          in.Type,
		NotificationTitle:         in.Title,
		NotificationMessage:       in.Message,
		NotificationProjectID:     in.ProjectID,
		NotificationApplicationID: in.ApplicationID,
		NotificationMetadata:      in.Metadata,
		NotificationCreatedAt:     createdAt,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, err
	}

	if err := s.sendEmail(&row); err != nil {
		log.Printf("[MAILER ERROR] notification=%s user=%s: %v", row.NotificationID, in.UserID, err)
	} else {
		if err := s.DB.Model(&row).Update("notification_is_email_sent", true).Error; err != nil {
			log.Printf("[ERROR] flag email sent notification=%s: %v", row.NotificationID, err)
		} else {
			row.NotificationIsEmailSent = true
		}
	}

	return &row, nil
}

func (s *NotificationService) sendEmail(n *notifModel.NotificationModel) error {
	var user userModel.UserModel
	if err := s.DB.Where("user_id = ?", n.NotificationUserID).First(&user).Error; err != nil {
		return err
	}

	link := ""
	if n.NotificationProjectID != nil {
		link = mailer.ProjectLink(n.NotificationProjectID.String())
	}

	return s.Mailer.Send(mailer.Message{
		To:      user.UserEmail,
		Subject: "[GradHub] " + n.NotificationTitle,
		Body:    mailer.RenderBody(n.NotificationTitle, n.NotificationMessage, link),
	})
}

// NotificationWithProject is a notification row annotated with the linked
// project's title for list responses.
type NotificationWithProject struct {
	notifModel.NotificationModel
	ProjectTitle *string `gorm:"column:project_title" json:"project_title,omitempty"`
}

// GetUserNotifications returns all of a user's notifications, newest first.
func (s *NotificationService) GetUserNotifications(userID uuid.UUID) ([]NotificationWithProject, error) {
	var rows []NotificationWithProject
	err := s.DB.Table("notifications").
		Select("notifications.*, projects.project_title").
		Joins("LEFT JOIN projects ON projects.project_id = notifications.notification_project_id").
		Where("notifications.notification_user_id = ?", userID).
		Order("notifications.notification_created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead flips one notification. Returns false when the id does not
// exist or belongs to another user.
func (s *NotificationService) MarkAsRead(userID, notificationID uuid.UUID) (bool, error) {
	now := s.Now()
	res := s.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"notification_is_read": true,
			"notification_read_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *NotificationService) MarkAllAsRead(userID uuid.UUID) (int64, error) {
	now := s.Now()
	res := s.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"notification_is_read": true,
			"notification_read_at": now,
		})
	return res.RowsAffected, res.Error
}

// Delete removes one notification. Returns false on ownership mismatch or
// missing id.
func (s *NotificationService) Delete(userID, notificationID uuid.UUID) (bool, error) {
	res := s.DB.
		Where("notification_id = ? AND notification_user_id = ?", notificationID, userID).
		Delete(&notifModel.NotificationModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// hasNotificationToday implements the once-per-day guard for warning types:
// at most one notification of the given type per user per calendar day, no
// matter how many poll ticks run that day.
func (s *NotificationService) hasNotificationToday(userID uuid.UUID, notifType string, now time.Time) (bool, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := s.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_type = ?", userID, notifType).
		Where("notification_created_at >= ? AND notification_created_at < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
