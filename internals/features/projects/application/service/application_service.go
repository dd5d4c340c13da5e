package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
	notifService "gradhub_backend/internals/features/notifications/notification/service"
	applicationModel "gradhub_backend/internals/features/projects/application/model"
	projectModel "gradhub_backend/internals/features/projects/project/model"
	settingsService "gradhub_backend/internals/features/settings/service"
	userModel "gradhub_backend/internals/features/users/user/model"
)

// Validation failures reported synchronously to the caller. No partial state
// change: every guard runs inside the same transaction as the write.
var (
	ErrNotFound        = errors.New("application not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectInactive = errors.New("project is not active")
	ErrProjectFull     = errors.New("project has reached its application limit")
	ErrDeadlinePassed  = errors.New("application deadline has passed")
	ErrAlreadyApproved = errors.New("student already holds an approved application")
	ErrAlreadyApplied  = errors.New("student already applied to this project")
	ErrNotPending      = errors.New("application is not pending")
	ErrNotOwner        = errors.New("application belongs to another teacher's project")
	ErrCapacityReached = errors.New("project has reached its approved student limit")
)

// ApplicationService enforces the application state machine:
// pending → approved | rejected (terminal). The composite unique index on
// (student, project) backs up the in-transaction duplicate check.
type ApplicationService struct {
	DB            *gorm.DB
	Notifications *notifService.NotificationService
	Settings      *settingsService.SettingsService

	Now func() time.Time
}

func NewApplicationService(db *gorm.DB, notifications *notifService.NotificationService) *ApplicationService {
	return &ApplicationService{
		DB:            db,
		Notifications: notifications,
		Settings:      settingsService.NewSettingsService(db),
		Now:           time.Now,
	}
}

// Apply creates a pending application for a student. Rejected when the
// deadline has passed, the student holds an approved application anywhere,
// the student has any prior application for this project, the project is
// inactive, or the project is at its application ceiling.
func (s *ApplicationService) Apply(studentID, projectID uuid.UUID, message string) (*applicationModel.ApplicationModel, error) {
	if deadline, found, err := s.Settings.GetTime(constants.SettingApplicationDeadline); err != nil {
		return nil, err
	} else if found && s.Now().After(deadline) {
		return nil, ErrDeadlinePassed
	}

	var app applicationModel.ApplicationModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var project projectModel.ProjectModel
		if err := tx.Where("project_id = ?", projectID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if !project.ProjectIsActive {
			return ErrProjectInactive
		}
		if project.ApplicationsFull() {
			return ErrProjectFull
		}

		var approvedCount int64
		if err := tx.Model(&applicationModel.ApplicationModel{}).
			Where("application_student_id = ? AND application_status = ?", studentID, applicationModel.StatusApproved).
			Count(&approvedCount).Error; err != nil {
			return err
		}
		if approvedCount > 0 {
			return ErrAlreadyApproved
		}

		var priorCount int64
		if err := tx.Model(&applicationModel.ApplicationModel{}).
			Where("application_student_id = ? AND application_project_id = ?", studentID, projectID).
			Count(&priorCount).Error; err != nil {
			return err
		}
		if priorCount > 0 {
			return ErrAlreadyApplied
		}

		app = applicationModel.ApplicationModel{
			ApplicationStudentID: studentID,
			ApplicationProjectID: projectID,
			ApplicationStatus:    applicationModel.StatusPending,
			ApplicationMessage:   message,
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}

		return tx.Model(&projectModel.ProjectModel{}).
			Where("project_id = ?", projectID).
			UpdateColumn("project_total_applications", gorm.Expr("project_total_applications + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyTeacherNewApplication(&app)

	return &app, nil
}

// Withdraw removes a pending application. Approved applications cannot be
// withdrawn by the student.
func (s *ApplicationService) Withdraw(studentID, applicationID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var app applicationModel.ApplicationModel
		if err := tx.Where("application_id = ? AND application_student_id = ?", applicationID, studentID).
			First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !app.IsPending() {
			return ErrNotPending
		}

		if err := tx.Delete(&app).Error; err != nil {
			return err
		}

		return tx.Model(&projectModel.ProjectModel{}).
			Where("project_id = ?", app.ApplicationProjectID).
			UpdateColumn("project_total_applications", gorm.Expr("project_total_applications - 1")).Error
	})
}

// Review decides a pending application. pending→approved is guarded by
// project_current_students < project_max_students re-read in the same
// transaction; on the guard failing the application stays pending. On
// approval the student's other pending applications are auto-rejected.
func (s *ApplicationService) Review(teacherID, applicationID uuid.UUID, approve bool, note string) (*applicationModel.ApplicationModel, error) {
	var app applicationModel.ApplicationModel
	var siblings []applicationModel.ApplicationModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Project").
			Where("application_id = ?", applicationID).
			First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if app.Project == nil || app.Project.ProjectTeacherID != teacherID {
			return ErrNotOwner
		}
		if !app.IsPending() {
			return ErrNotPending
		}

		now := s.Now()
		updates := map[string]interface{}{
			"application_reviewed_at": now,
		}
		if note != "" {
			updates["application_review_note"] = note
		}

		if approve {
			// re-read the counter inside the transaction
			var project projectModel.ProjectModel
			if err := tx.Where("project_id = ?", app.ApplicationProjectID).First(&project).Error; err != nil {
				return err
			}
			if project.IsFull() {
				return ErrCapacityReached
			}

			updates["application_status"] = applicationModel.StatusApproved
			if err := tx.Model(&app).Updates(updates).Error; err != nil {
				return err
			}
			if err := tx.Model(&projectModel.ProjectModel{}).
				Where("project_id = ?", project.ProjectID).
				UpdateColumn("project_current_students", gorm.Expr("project_current_students + 1")).Error; err != nil {
				return err
			}
			app.ApplicationStatus = applicationModel.StatusApproved

			// auto-reject the student's other pending applications
			if err := tx.Where("application_student_id = ? AND application_status = ? AND application_id <> ?",
				app.ApplicationStudentID, applicationModel.StatusPending, app.ApplicationID).
				Find(&siblings).Error; err != nil {
				return err
			}
			for i := range siblings {
				if err := tx.Model(&siblings[i]).Updates(map[string]interface{}{
					"application_status":      applicationModel.StatusRejected,
					"application_reviewed_at": now,
					"application_review_note": "Automatically rejected: another application was approved.",
				}).Error; err != nil {
					return err
				}
				if err := tx.Model(&projectModel.ProjectModel{}).
					Where("project_id = ?", siblings[i].ApplicationProjectID).
					UpdateColumn("project_total_applications", gorm.Expr("project_total_applications - 1")).Error; err != nil {
					return err
				}
				siblings[i].ApplicationStatus = applicationModel.StatusRejected
			}
			return nil
		}

		// rejection frees an application slot for the quota alert evaluator
		updates["application_status"] = applicationModel.StatusRejected
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}
		app.ApplicationStatus = applicationModel.StatusRejected

		return tx.Model(&projectModel.ProjectModel{}).
			Where("project_id = ?", app.ApplicationProjectID).
			UpdateColumn("project_total_applications", gorm.Expr("project_total_applications - 1")).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyStudentDecision(&app)
	for i := range siblings {
		s.notifyStudentDecision(&siblings[i])
	}

	return &app, nil
}

func (s *ApplicationService) ListByStudent(studentID uuid.UUID) ([]applicationModel.ApplicationModel, error) {
	var apps []applicationModel.ApplicationModel
	err := s.DB.Preload("Project").
		Where("application_student_id = ?", studentID).
		Order("application_created_at DESC").
		Find(&apps).Error
	return apps, err
}

// ListForTeacher returns the pending applications across a teacher's
// projects, oldest first so review order matches arrival order.
func (s *ApplicationService) ListForTeacher(teacherID uuid.UUID) ([]applicationModel.ApplicationModel, error) {
	var apps []applicationModel.ApplicationModel
	err := s.DB.Preload("Project").
		Joins("JOIN projects ON projects.project_id = project_applications.application_project_id").
		Where("projects.project_teacher_id = ? AND project_applications.application_status = ?",
			teacherID, applicationModel.StatusPending).
		Order("project_applications.application_created_at ASC").
		Find(&apps).Error
	return apps, err
}

/* ======== decision notifications (best effort, outside the tx) ======== */

func (s *ApplicationService) notifyTeacherNewApplication(app *applicationModel.ApplicationModel) {
	if s.Notifications == nil {
		return
	}

	var project projectModel.ProjectModel
	if err := s.DB.Where("project_id = ?", app.ApplicationProjectID).First(&project).Error; err != nil {
		log.Printf("[ERROR] notify teacher: project lookup: %v", err)
		return
	}
	var student userModel.UserModel
	if err := s.DB.Where("user_id = ?", app.ApplicationStudentID).First(&student).Error; err != nil {
		log.Printf("[ERROR] notify teacher: student lookup: %v", err)
		return
	}

	projectID := project.ProjectID
	appID := app.ApplicationID
	if _, err := s.Notifications.CreateNotification(notifService.CreateNotificationInput{
		UserID:        project.ProjectTeacherID,
		Type:          constants.NotificationTypeApplicationReceived,
		Title:         "New application for " + project.ProjectTitle,
		Message:       fmt.Sprintf("%s applied to your project %q.", student.UserFullName, project.ProjectTitle),
		ProjectID:     &projectID,
		ApplicationID: &appID,
	}); err != nil {
		log.Printf("[ERROR] notify teacher: %v", err)
	}
}

func (s *ApplicationService) notifyStudentDecision(app *applicationModel.ApplicationModel) {
	if s.Notifications == nil {
		return
	}

	var project projectModel.ProjectModel
	if err := s.DB.Where("project_id = ?", app.ApplicationProjectID).First(&project).Error; err != nil {
		log.Printf("[ERROR] notify student: project lookup: %v", err)
		return
	}

	notifType := constants.NotificationTypeApplicationRejected
	title := "Application rejected"
	message := fmt.Sprintf("Your application to %q was rejected.", project.ProjectTitle)
	if app.ApplicationStatus == applicationModel.StatusApproved {
		notifType = constants.NotificationTypeApplicationApproved
		title = "Application approved"
		message = fmt.Sprintf("Congratulations! Your application to %q was approved.", project.ProjectTitle)
	}

	projectID := project.ProjectID
	appID := app.ApplicationID
	if _, err := s.Notifications.CreateNotification(notifService.CreateNotificationInput{
		UserID:        app.ApplicationStudentID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		ProjectID:     &projectID,
		ApplicationID: &appID,
	}); err != nil {
		log.Printf("[ERROR] notify student: %v", err)
	}
}
