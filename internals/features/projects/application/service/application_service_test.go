package service

import (
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
	notifService "gradhub_backend/internals/features/notifications/notification/service"
	applicationModel "gradhub_backend/internals/features/projects/application/model"
	projectModel "gradhub_backend/internals/features/projects/project/model"
	settingModel "gradhub_backend/internals/features/settings/model"
	userModel "gradhub_backend/internals/features/users/user/model"
	"gradhub_backend/internals/mailer"
)

func newTestApplicationService(t *testing.T) *ApplicationService {
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

	m := mailer.NewConsoleMailer()
	m.DisableOutput = true
	return NewApplicationService(db, notifService.NewNotificationService(db, m))
}

func makeStudent(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
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

func makeTeacher(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
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

func makeProject(t *testing.T, db *gorm.DB, teacherID uuid.UUID, maxStudents int) *projectModel.ProjectModel {
	t.Helper()

	project := projectModel.ProjectModel{
		ProjectTeacherID:   teacherID,
		ProjectTitle:       "Energy-aware Task Scheduling",
		ProjectMaxStudents: maxStudents,
		ProjectIsActive:    true,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func reloadProject(t *testing.T, db *gorm.DB, projectID uuid.UUID) *projectModel.ProjectModel {
	t.Helper()

	var project projectModel.ProjectModel
	require.NoError(t, db.First(&project, "project_id = ?", projectID).Error)
	return &project
}

func TestApplyCreatesPendingAndNotifiesTeacher(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	student := makeStudent(t, svc.DB, "ali@example.edu")
	project := makeProject(t, svc.DB, teacher.UserID, 2)

	app, err := svc.Apply(student.UserID, project.ProjectID, "I worked on this topic before.")
	require.NoError(t, err)
	assert.Equal(t, applicationModel.StatusPending, app.ApplicationStatus)

	assert.Equal(t, 1, reloadProject(t, svc.DB, project.ProjectID).ProjectTotalApplications)

	var count int64
	require.NoError(t, svc.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_type = ?",
			teacher.UserID, constants.NotificationTypeApplicationReceived).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApplyGuards(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	student := makeStudent(t, svc.DB, "ali@example.edu")

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.Apply(student.UserID, uuid.New(), "")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("inactive project", func(t *testing.T) {
		project := makeProject(t, svc.DB, teacher.UserID, 1)
		require.NoError(t, svc.DB.Model(project).Update("project_is_active", false).Error)

		_, err := svc.Apply(student.UserID, project.ProjectID, "")
		assert.ErrorIs(t, err, ErrProjectInactive)
	})

	t.Run("application ceiling", func(t *testing.T) {
		// max_students=1 means at most 3 applications
		project := makeProject(t, svc.DB, teacher.UserID, 1)
		for i := 0; i < 3; i++ {
			other := makeStudent(t, svc.DB, uuid.NewString()+"@example.edu")
			_, err := svc.Apply(other.UserID, project.ProjectID, "")
			require.NoError(t, err)
		}

		_, err := svc.Apply(student.UserID, project.ProjectID, "")
		assert.ErrorIs(t, err, ErrProjectFull)
		assert.Equal(t, 3, reloadProject(t, svc.DB, project.ProjectID).ProjectTotalApplications)
	})

	t.Run("duplicate application", func(t *testing.T) {
		project := makeProject(t, svc.DB, teacher.UserID, 2)
		_, err := svc.Apply(student.UserID, project.ProjectID, "")
		require.NoError(t, err)

		_, err = svc.Apply(student.UserID, project.ProjectID, "")
		assert.ErrorIs(t, err, ErrAlreadyApplied)
	})

	t.Run("already approved elsewhere", func(t *testing.T) {
		approvedStudent := makeStudent(t, svc.DB, "approved@example.edu")
		first := makeProject(t, svc.DB, teacher.UserID, 2)
		app, err := svc.Apply(approvedStudent.UserID, first.ProjectID, "")
		require.NoError(t, err)
		_, err = svc.Review(teacher.UserID, app.ApplicationID, true, "")
		require.NoError(t, err)

		second := makeProject(t, svc.DB, teacher.UserID, 2)
		_, err = svc.Apply(approvedStudent.UserID, second.ProjectID, "")
		assert.ErrorIs(t, err, ErrAlreadyApproved)
	})
}

func TestApplyRespectsDeadline(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	student := makeStudent(t, svc.DB, "late@example.edu")
	project := makeProject(t, svc.DB, teacher.UserID, 2)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	svc.Now = func() time.Time { return now }

	require.NoError(t, svc.DB.Create(&settingModel.SettingModel{
		SettingKey:   constants.SettingApplicationDeadline,
		SettingValue: now.Add(-time.Hour).Format(time.RFC3339),
	}).Error)

	_, err := svc.Apply(student.UserID, project.ProjectID, "")
	assert.ErrorIs(t, err, ErrDeadlinePassed)

	// moving the clock back before the deadline lets it through
	svc.Now = func() time.Time { return now.Add(-2 * time.Hour) }
	_, err = svc.Apply(student.UserID, project.ProjectID, "")
	assert.NoError(t, err)
}

func TestWithdrawOnlyPending(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	student := makeStudent(t, svc.DB, "ali@example.edu")
	project := makeProject(t, svc.DB, teacher.UserID, 2)

	app, err := svc.Apply(student.UserID, project.ProjectID, "")
	require.NoError(t, err)

	t.Run("someone else's application", func(t *testing.T) {
		other := makeStudent(t, svc.DB, "other@example.edu")
		assert.ErrorIs(t, svc.Withdraw(other.UserID, app.ApplicationID), ErrNotFound)
	})

	t.Run("pending withdraw frees the slot", func(t *testing.T) {
		require.NoError(t, svc.Withdraw(student.UserID, app.ApplicationID))
		assert.Equal(t, 0, reloadProject(t, svc.DB, project.ProjectID).ProjectTotalApplications)
	})

	t.Run("approved cannot be withdrawn", func(t *testing.T) {
		app, err := svc.Apply(student.UserID, project.ProjectID, "")
		require.NoError(t, err)
		_, err = svc.Review(teacher.UserID, app.ApplicationID, true, "")
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Withdraw(student.UserID, app.ApplicationID), ErrNotPending)
	})
}

func TestReviewApproveAutoRejectsSiblings(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	student := makeStudent(t, svc.DB, "ali@example.edu")
	wanted := makeProject(t, svc.DB, teacher.UserID, 2)
	backup := makeProject(t, svc.DB, teacher.UserID, 2)

	mainApp, err := svc.Apply(student.UserID, wanted.ProjectID, "")
	require.NoError(t, err)
	backupApp, err := svc.Apply(student.UserID, backup.ProjectID, "")
	require.NoError(t, err)

	reviewed, err := svc.Review(teacher.UserID, mainApp.ApplicationID, true, "Strong background.")
	require.NoError(t, err)
	assert.Equal(t, applicationModel.StatusApproved, reviewed.ApplicationStatus)

	assert.Equal(t, 1, reloadProject(t, svc.DB, wanted.ProjectID).ProjectCurrentStudents)

	var sibling applicationModel.ApplicationModel
	require.NoError(t, svc.DB.First(&sibling, "application_id = ?", backupApp.ApplicationID).Error)
	assert.Equal(t, applicationModel.StatusRejected, sibling.ApplicationStatus)
	require.NotNil(t, sibling.ApplicationReviewNote)
	assert.Contains(t, *sibling.ApplicationReviewNote, "Automatically rejected")

	// the auto-rejection releases the backup project's slot
	assert.Equal(t, 0, reloadProject(t, svc.DB, backup.ProjectID).ProjectTotalApplications)

	// student got both decisions
	var count int64
	require.NoError(t, svc.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ?", student.UserID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestReviewRejectFreesApplicationSlot(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	student := makeStudent(t, svc.DB, "ali@example.edu")
	project := makeProject(t, svc.DB, teacher.UserID, 2)

	app, err := svc.Apply(student.UserID, project.ProjectID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, reloadProject(t, svc.DB, project.ProjectID).ProjectTotalApplications)

	reviewed, err := svc.Review(teacher.UserID, app.ApplicationID, false, "Topic mismatch.")
	require.NoError(t, err)
	assert.Equal(t, applicationModel.StatusRejected, reviewed.ApplicationStatus)
	assert.Equal(t, 0, reloadProject(t, svc.DB, project.ProjectID).ProjectTotalApplications)
	assert.Equal(t, 0, reloadProject(t, svc.DB, project.ProjectID).ProjectCurrentStudents)
}

func TestReviewGuards(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	intruder := makeTeacher(t, svc.DB, "intruder@example.edu")
	student := makeStudent(t, svc.DB, "ali@example.edu")
	project := makeProject(t, svc.DB, teacher.UserID, 1)

	app, err := svc.Apply(student.UserID, project.ProjectID, "")
	require.NoError(t, err)

	t.Run("unknown application", func(t *testing.T) {
		_, err := svc.Review(teacher.UserID, uuid.New(), true, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("not the owner", func(t *testing.T) {
		_, err := svc.Review(intruder.UserID, app.ApplicationID, true, "")
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("capacity reached keeps the application pending", func(t *testing.T) {
		// fill the single slot with another approval
		other := makeStudent(t, svc.DB, "other@example.edu")
		otherApp, err := svc.Apply(other.UserID, project.ProjectID, "")
		require.NoError(t, err)
		_, err = svc.Review(teacher.UserID, otherApp.ApplicationID, true, "")
		require.NoError(t, err)

		_, err = svc.Review(teacher.UserID, app.ApplicationID, true, "")
		assert.ErrorIs(t, err, ErrCapacityReached)

		var reread applicationModel.ApplicationModel
		require.NoError(t, svc.DB.First(&reread, "application_id = ?", app.ApplicationID).Error)
		assert.Equal(t, applicationModel.StatusPending, reread.ApplicationStatus)
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		_, err := svc.Review(teacher.UserID, app.ApplicationID, false, "")
		require.NoError(t, err)

		_, err = svc.Review(teacher.UserID, app.ApplicationID, true, "")
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestListForTeacherOldestFirst(t *testing.T) {
	svc := newTestApplicationService(t)
	teacher := makeTeacher(t, svc.DB, "hoca@example.edu")
	project := makeProject(t, svc.DB, teacher.UserID, 3)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		s := makeStudent(t, svc.DB, uuid.NewString()+"@example.edu")
		app, err := svc.Apply(s.UserID, project.ProjectID, "")
		require.NoError(t, err)
		ids = append(ids, app.ApplicationID)

		// distinct created_at so the ordering is observable
		require.NoError(t, svc.DB.Model(&applicationModel.ApplicationModel{}).
			Where("application_id = ?", app.ApplicationID).
			Update("application_created_at", time.Now().Add(time.Duration(i)*time.Minute)).Error)
	}

	apps, err := svc.ListForTeacher(teacher.UserID)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	for i, app := range apps {
		assert.Equal(t, ids[i], app.ApplicationID)
		require.NotNil(t, app.Project)
		assert.Equal(t, project.ProjectID, app.Project.ProjectID)
	}
}
