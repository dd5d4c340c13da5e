package service

import (
	"testing"

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
	userModel "gradhub_backend/internals/features/users/user/model"
)

func newTestProjectService(t *testing.T) *ProjectService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&projectModel.ProjectModel{},
		&applicationModel.ApplicationModel{},
		&notifModel.QuotaAlertModel{},
	))
	return NewProjectService(db)
}

func projectTestTeacher(t *testing.T, db *gorm.DB, quota *int) *userModel.UserModel {
	t.Helper()

	user := userModel.UserModel{
		UserFullName:     "Teacher " + uuid.NewString()[:6],
		UserEmail:        uuid.NewString() + "@example.edu",
		UserPassword:     "irrelevant",
		UserRole:         constants.RoleTeacher,
		UserProjectQuota: quota,
		UserIsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestCreateEnforcesTeacherQuota(t *testing.T) {
	svc := newTestProjectService(t)
	quota := 2
	teacher := projectTestTeacher(t, svc.DB, &quota)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(teacher.UserID, CreateProjectInput{
			Title:       "IoT Sensor Fusion Testbed",
			MaxStudents: 2,
		})
		require.NoError(t, err)
	}

	_, err := svc.Create(teacher.UserID, CreateProjectInput{
		Title:       "One Project Too Many",
		MaxStudents: 1,
	})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestCreateWithoutQuotaIsUnlimited(t *testing.T) {
	svc := newTestProjectService(t)
	teacher := projectTestTeacher(t, svc.DB, nil)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(teacher.UserID, CreateProjectInput{
			Title:       "Unbounded Supervision Load",
			MaxStudents: 1,
		})
		require.NoError(t, err)
	}
}

func TestUpdateOwnershipAndMaxStudents(t *testing.T) {
	svc := newTestProjectService(t)
	owner := projectTestTeacher(t, svc.DB, nil)
	intruder := projectTestTeacher(t, svc.DB, nil)

	project, err := svc.Create(owner.UserID, CreateProjectInput{
		Title:       "Graph Partitioning Heuristics",
		MaxStudents: 3,
	})
	require.NoError(t, err)

	_, err = svc.Update(intruder.UserID, project.ProjectID, UpdateProjectInput{})
	assert.ErrorIs(t, err, ErrNotOwner)

	// shrinking below the approved headcount is refused
	require.NoError(t, svc.DB.Model(project).Update("project_current_students", 2).Error)
	smaller := 1
	_, err = svc.Update(owner.UserID, project.ProjectID, UpdateProjectInput{MaxStudents: &smaller})
	assert.ErrorIs(t, err, ErrMaxBelowCurrent)

	bigger := 5
	updated, err := svc.Update(owner.UserID, project.ProjectID, UpdateProjectInput{MaxStudents: &bigger})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.ProjectMaxStudents)
}

func TestDeleteRefusesWithApprovedStudents(t *testing.T) {
	svc := newTestProjectService(t)
	teacher := projectTestTeacher(t, svc.DB, nil)

	project, err := svc.Create(teacher.UserID, CreateProjectInput{
		Title:       "Compiler Optimization Passes",
		MaxStudents: 1,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DB.Model(project).Update("project_current_students", 1).Error)

	assert.ErrorIs(t, svc.Delete(teacher.UserID, project.ProjectID), ErrHasStudents)
}

func TestDeleteRemovesPendingApplications(t *testing.T) {
	svc := newTestProjectService(t)
	teacher := projectTestTeacher(t, svc.DB, nil)

	project, err := svc.Create(teacher.UserID, CreateProjectInput{
		Title:       "Doomed Project",
		MaxStudents: 2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DB.Create(&applicationModel.ApplicationModel{
		ApplicationStudentID: uuid.New(),
		ApplicationProjectID: project.ProjectID,
		ApplicationStatus:    applicationModel.StatusPending,
	}).Error)

	require.NoError(t, svc.Delete(teacher.UserID, project.ProjectID))

	_, err = svc.Get(project.ProjectID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	var count int64
	require.NoError(t, svc.DB.Model(&applicationModel.ApplicationModel{}).
		Where("application_project_id = ?", project.ProjectID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteDeactivatesQuotaAlerts(t *testing.T) {
	svc := newTestProjectService(t)
	teacher := projectTestTeacher(t, svc.DB, nil)

	project, err := svc.Create(teacher.UserID, CreateProjectInput{
		Title:       "Retired Topic",
		MaxStudents: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DB.Create(&notifModel.QuotaAlertModel{
		QuotaAlertStudentID: uuid.New(),
		QuotaAlertProjectID: project.ProjectID,
		QuotaAlertIsActive:  true,
	}).Error)

	require.NoError(t, svc.Delete(teacher.UserID, project.ProjectID))

	var alert notifModel.QuotaAlertModel
	require.NoError(t, svc.DB.First(&alert, "quota_alert_project_id = ?", project.ProjectID).Error)
	assert.False(t, alert.QuotaAlertIsActive)
}

func TestBrowseFilters(t *testing.T) {
	svc := newTestProjectService(t)
	teacher := projectTestTeacher(t, svc.DB, nil)

	visible, err := svc.Create(teacher.UserID, CreateProjectInput{
		Title:       "Stream Processing With Backpressure",
		MaxStudents: 2,
	})
	require.NoError(t, err)

	hidden, err := svc.Create(teacher.UserID, CreateProjectInput{
		Title:       "Hidden Archive Topic",
		MaxStudents: 2,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DB.Model(hidden).Update("project_is_active", false).Error)

	full, err := svc.Create(teacher.UserID, CreateProjectInput{
		Title:       "Fully Booked Lab Project",
		MaxStudents: 1,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DB.Model(full).Updates(map[string]interface{}{
		"project_current_students":   1,
		"project_total_applications": 3,
	}).Error)

	t.Run("inactive projects stay hidden", func(t *testing.T) {
		projects, total, err := svc.Browse(BrowseFilter{}, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, p := range projects {
			assert.NotEqual(t, hidden.ProjectID, p.ProjectID)
		}
	})

	t.Run("available filter drops full projects", func(t *testing.T) {
		projects, total, err := svc.Browse(BrowseFilter{OnlyAvailable: true}, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, projects, 1)
		assert.Equal(t, visible.ProjectID, projects[0].ProjectID)
	})

	t.Run("search matches the title", func(t *testing.T) {
		projects, total, err := svc.Browse(BrowseFilter{Search: "backpressure"}, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, projects, 1)
		assert.Equal(t, visible.ProjectID, projects[0].ProjectID)
	})
}
