package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "gradhub_backend/internals/features/notifications/notification/model"
	appModel "gradhub_backend/internals/features/projects/application/model"
	projectModel "gradhub_backend/internals/features/projects/project/model"
	userModel "gradhub_backend/internals/features/users/user/model"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotOwner        = errors.New("project belongs to another teacher")
	ErrQuotaExceeded   = errors.New("teacher project quota exceeded")
	ErrHasStudents     = errors.New("project already has approved students")
	ErrMaxBelowCurrent = errors.New("max students cannot go below current students")
	ErrTeacherNotFound = errors.New("teacher not found")
)

// ProjectService covers project lifecycle for teachers and browsing for
// students.
type ProjectService struct {
	DB *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{DB: db}
}

type CreateProjectInput struct {
	Title       string
	Description string
	MaxStudents int
}

type UpdateProjectInput struct {
	Title       *string
	Description *string
	MaxStudents *int
	IsActive    *bool
}

type BrowseFilter struct {
	Search        string
	TeacherID     *uuid.UUID
	OnlyAvailable bool
}

// Create enforces the per-teacher project quota when one is configured on the
// teacher's account.
func (s *ProjectService) Create(teacherID uuid.UUID, in CreateProjectInput) (*projectModel.ProjectModel, error) {
	var teacher userModel.UserModel
	err := s.DB.Where("user_id = ?", teacherID).First(&teacher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeacherNotFound
	}
	if err != nil {
		return nil, err
	}

	if teacher.UserProjectQuota != nil {
		var count int64
		if err := s.DB.Model(&projectModel.ProjectModel{}).
			Where("project_teacher_id = ?", teacherID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count >= int64(*teacher.UserProjectQuota) {
			return nil, ErrQuotaExceeded
		}
	}

	project := projectModel.ProjectModel{
		ProjectTeacherID:   teacherID,
		ProjectTitle:       strings.TrimSpace(in.Title),
		ProjectDescription: strings.TrimSpace(in.Description),
		ProjectMaxStudents: in.MaxStudents,
		ProjectIsActive:    true,
	}
	if err := s.DB.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Get(projectID uuid.UUID) (*projectModel.ProjectModel, error) {
	var project projectModel.ProjectModel
	err := s.DB.Where("project_id = ?", projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Update(teacherID, projectID uuid.UUID, in UpdateProjectInput) (*projectModel.ProjectModel, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.ProjectTeacherID != teacherID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["project_title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		updates["project_description"] = strings.TrimSpace(*in.Description)
	}
	if in.MaxStudents != nil {
		if *in.MaxStudents < project.ProjectCurrentStudents {
			return nil, ErrMaxBelowCurrent
		}
		updates["project_max_students"] = *in.MaxStudents
	}
	if in.IsActive != nil {
		updates["project_is_active"] = *in.IsActive
	}

	if len(updates) == 0 {
		return project, nil
	}
	if err := s.DB.Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(projectID)
}

// Delete soft-deletes a project. Projects with approved students stay; the
// teacher has to release students first.
func (s *ProjectService) Delete(teacherID, projectID uuid.UUID) error {
	project, err := s.Get(projectID)
	if err != nil {
		return err
	}
	if project.ProjectTeacherID != teacherID {
		return ErrNotOwner
	}
	if project.ProjectCurrentStudents > 0 {
		return ErrHasStudents
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// pending applications die with the project
		if err := tx.Where(
			"application_project_id = ? AND application_status = ?",
			projectID, appModel.StatusPending,
		).Delete(&appModel.ApplicationModel{}).Error; err != nil {
			return err
		}
		// quota alerts on a gone project can never fire
		if err := tx.Model(&notifModel.QuotaAlertModel{}).
			Where("quota_alert_project_id = ? AND quota_alert_is_active = ?", projectID, true).
			Update("quota_alert_is_active", false).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
}

// Browse lists active projects for students, newest first.
func (s *ProjectService) Browse(filter BrowseFilter, offset, limit int) ([]projectModel.ProjectModel, int64, error) {
	q := s.DB.Model(&projectModel.ProjectModel{}).
		Where("project_is_active = ?", true)

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(project_title) LIKE ? OR LOWER(project_description) LIKE ?", like, like)
	}
	if filter.TeacherID != nil {
		q = q.Where("project_teacher_id = ?", *filter.TeacherID)
	}
	if filter.OnlyAvailable {
		q = q.Where("project_current_students < project_max_students").
			Where("project_total_applications < project_max_students + ?", projectModel.ExtraApplicationSlots)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []projectModel.ProjectModel
	err := q.Order("project_created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, total, err
}

// ListByTeacher includes inactive projects so the owner sees everything.
func (s *ProjectService) ListByTeacher(teacherID uuid.UUID) ([]projectModel.ProjectModel, error) {
	var projects []projectModel.ProjectModel
	err := s.DB.
		Where("project_teacher_id = ?", teacherID).
		Order("project_created_at DESC").
		Find(&projects).Error
	return projects, err
}

// TeacherName resolves the owning teacher's display name for detail views.
func (s *ProjectService) TeacherName(teacherID uuid.UUID) (string, error) {
	var teacher userModel.UserModel
	err := s.DB.Select("user_full_name").Where("user_id = ?", teacherID).First(&teacher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return teacher.UserFullName, nil
}
