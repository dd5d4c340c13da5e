package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gradhub_backend/internals/constants"
	notifModel "gradhub_backend/internals/features/notifications/notification/model"
	applicationModel "gradhub_backend/internals/features/projects/application/model"
	projectModel "gradhub_backend/internals/features/projects/project/model"
	settingModel "gradhub_backend/internals/features/settings/model"
	userModel "gradhub_backend/internals/features/users/user/model"
	"gradhub_backend/internals/mailer"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&projectModel.ProjectModel{},
		&applicationModel.ApplicationModel{},
		&notifModel.NotificationModel{},
		&notifModel.QuotaAlertModel{},
		&settingModel.SettingModel{},
	))
	return db
}

func newTestService(t *testing.T) (*NotificationService, *mailer.ConsoleMailer) {
	t.Helper()

	m := mailer.NewConsoleMailer()
	m.DisableOutput = true

	svc := NewNotificationService(openTestDB(t), m)
	return svc, m
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
	t.Helper()

	number := uuid.NewString()[:8]
	user := userModel.UserModel{
		UserFullName:      "Student " + email,
		UserEmail:         email,
		UserPassword:      "irrelevant",
		UserRole:          constants.RoleStudent,
		UserStudentNumber: &number,
		UserIsActive:      true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedTeacher(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
	t.Helper()

	user := userModel.UserModel{
		UserFullName: "Teacher " + email,
		UserEmail:    email,
		UserPassword: "irrelevant",
		UserRole:     constants.RoleTeacher,
		UserIsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, teacherID uuid.UUID, maxStudents int) *projectModel.ProjectModel {
	t.Helper()

	project := projectModel.ProjectModel{
		ProjectTeacherID:   teacherID,
		ProjectTitle:       "Routing Protocols in Ad-hoc Networks",
		ProjectDescription: "Simulation and evaluation.",
		ProjectMaxStudents: maxStudents,
		ProjectIsActive:    true,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func seedApplication(t *testing.T, db *gorm.DB, studentID, projectID uuid.UUID, status applicationModel.ApplicationStatus) *applicationModel.ApplicationModel {
	t.Helper()

	app := applicationModel.ApplicationModel{
		ApplicationStudentID: studentID,
		ApplicationProjectID: projectID,
		ApplicationStatus:    status,
	}
	require.NoError(t, db.Create(&app).Error)
	return &app
}

func setSetting(t *testing.T, db *gorm.DB, key, value string) {
	t.Helper()

	require.NoError(t, db.Where("setting_key = ?", key).Delete(&settingModel.SettingModel{}).Error)
	require.NoError(t, db.Create(&settingModel.SettingModel{
		SettingKey:   key,
		SettingValue: value,
	}).Error)
}

func TestCreateNotificationPersistsAndSendsEmail(t *testing.T) {
	svc, m := newTestService(t)
	student := seedStudent(t, svc.DB, "ali@example.edu")

	row, err := svc.CreateNotification(CreateNotificationInput{
		UserID:  student.UserID,
		Type:    constants.NotificationTypeApplicationApproved,
		Title:   "Application approved",
		Message: "Your application was approved.",
	})
	require.NoError(t, err)
	assert.True(t, row.NotificationIsEmailSent)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ali@example.edu", sent[0].To)
	assert.Contains(t, sent[0].Subject, "Application approved")
}

func TestCreateNotificationStampFollowsClock(t *testing.T) {
	svc, _ := newTestService(t)
	student := seedStudent(t, svc.DB, "clockstamp@example.edu")

	injected := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	svc.Now = func() time.Time { return injected }

	row, err := svc.CreateNotification(CreateNotificationInput{
		UserID:  student.UserID,
		Type:    constants.NotificationTypeDeadlineWarning,
		Title:   "t",
		Message: "m",
	})
	require.NoError(t, err)

	var stored notifModel.NotificationModel
	require.NoError(t, svc.DB.First(&stored, "notification_id = ?", row.NotificationID).Error)
	assert.True(t, stored.NotificationCreatedAt.Equal(injected))

	// the daily guard must see the row on the same simulated day
	already, err := svc.hasNotificationToday(student.UserID, constants.NotificationTypeDeadlineWarning, injected.Add(8*time.Hour))
	require.NoError(t, err)
	assert.True(t, already)

	explicit := injected.Add(48 * time.Hour)
	row, err = svc.CreateNotification(CreateNotificationInput{
		UserID:    student.UserID,
		Type:      constants.NotificationTypeDeadlineWarning,
		Title:     "t2",
		Message:   "m2",
		CreatedAt: explicit,
	})
	require.NoError(t, err)

	// reset: First would otherwise add the previous row's primary key as a condition
	stored = notifModel.NotificationModel{}
	require.NoError(t, svc.DB.First(&stored, "notification_id = ?", row.NotificationID).Error)
	assert.True(t, stored.NotificationCreatedAt.Equal(explicit))
}

func TestCreateNotificationSurvivesMailerFailure(t *testing.T) {
	svc, m := newTestService(t)
	student := seedStudent(t, svc.DB, "ayse@example.edu")
	m.FailWith = errors.New("smtp down")

	row, err := svc.CreateNotification(CreateNotificationInput{
		UserID:  student.UserID,
		Type:    constants.NotificationTypeApplicationRejected,
		Title:   "Application rejected",
		Message: "Your application was rejected.",
	})
	require.NoError(t, err)
	assert.False(t, row.NotificationIsEmailSent)

	var count int64
	require.NoError(t, svc.DB.Model(&notifModel.NotificationModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMarkAsReadChecksOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	owner := seedStudent(t, svc.DB, "owner@example.edu")
	other := seedStudent(t, svc.DB, "other@example.edu")

	row, err := svc.CreateNotification(CreateNotificationInput{
		UserID:  owner.UserID,
		Type:    constants.NotificationTypeApplicationReceived,
		Title:   "t",
		Message: "m",
	})
	require.NoError(t, err)

	ok, err := svc.MarkAsRead(other.UserID, row.NotificationID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.MarkAsRead(owner.UserID, row.NotificationID)
	require.NoError(t, err)
	assert.True(t, ok)

	var reread notifModel.NotificationModel
	require.NoError(t, svc.DB.First(&reread, "notification_id = ?", row.NotificationID).Error)
	assert.True(t, reread.NotificationIsRead)
	assert.NotNil(t, reread.NotificationReadAt)
}

func TestUnreadCountAndMarkAllAsRead(t *testing.T) {
	svc, _ := newTestService(t)
	student := seedStudent(t, svc.DB, "busy@example.edu")

	for i := 0; i < 3; i++ {
		_, err := svc.CreateNotification(CreateNotificationInput{
			UserID:  student.UserID,
			Type:    constants.NotificationTypeApplicationReceived,
			Title:   "t",
			Message: "m",
		})
		require.NoError(t, err)
	}

	count, err := svc.UnreadCount(student.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	updated, err := svc.MarkAllAsRead(student.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated)

	count, err = svc.UnreadCount(student.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestDeleteChecksOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	owner := seedStudent(t, svc.DB, "del-owner@example.edu")
	other := seedStudent(t, svc.DB, "del-other@example.edu")

	row, err := svc.CreateNotification(CreateNotificationInput{
		UserID:  owner.UserID,
		Type:    constants.NotificationTypeApplicationReceived,
		Title:   "t",
		Message: "m",
	})
	require.NoError(t, err)

	ok, err := svc.Delete(other.UserID, row.NotificationID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(owner.UserID, row.NotificationID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetUserNotificationsJoinsProjectTitle(t *testing.T) {
	svc, _ := newTestService(t)
	teacher := seedTeacher(t, svc.DB, "hoca@example.edu")
	student := seedStudent(t, svc.DB, "list@example.edu")
	project := seedProject(t, svc.DB, teacher.UserID, 2)

	projectID := project.ProjectID
	_, err := svc.CreateNotification(CreateNotificationInput{
		UserID:    student.UserID,
		Type:      constants.NotificationTypeQuotaAvailable,
		Title:     "slot",
		Message:   "m",
		ProjectID: &projectID,
	})
	require.NoError(t, err)

	rows, err := svc.GetUserNotifications(student.UserID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].ProjectTitle)
	assert.Equal(t, project.ProjectTitle, *rows[0].ProjectTitle)
}

func TestHasNotificationTodayBoundaries(t *testing.T) {
	svc, _ := newTestService(t)
	student := seedStudent(t, svc.DB, "bounds@example.edu")

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	yesterday := now.Add(-24 * time.Hour)

	require.NoError(t, svc.DB.Create(&notifModel.NotificationModel{
		NotificationUserID:    student.UserID,
		NotificationType:      constants.NotificationTypeDeadlineWarning,
		NotificationTitle:     "t",
		NotificationMessage:   "m",
		NotificationCreatedAt: yesterday,
	}).Error)

	already, err := svc.hasNotificationToday(student.UserID, constants.NotificationTypeDeadlineWarning, now)
	require.NoError(t, err)
	assert.False(t, already)

	require.NoError(t, svc.DB.Create(&notifModel.NotificationModel{
		NotificationUserID:    student.UserID,
		NotificationType:      constants.NotificationTypeDeadlineWarning,
		NotificationTitle:     "t",
		NotificationMessage:   "m",
		NotificationCreatedAt: now.Add(-time.Hour),
	}).Error)

	already, err = svc.hasNotificationToday(student.UserID, constants.NotificationTypeDeadlineWarning, now)
	require.NoError(t, err)
	assert.True(t, already)
}
