package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Spare application slots beyond max_students, so a teacher always has
// candidates to fall back on after rejections.
const ExtraApplicationSlots = 2

// ProjectModel represents the projects table.
//
// Counters are denormalized and maintained inside the same transaction as the
// application writes:
//   - project_current_students   = approved applications, never above project_max_students
//   - project_total_applications = pending+approved, never above project_max_students+2
type ProjectModel struct {
	ProjectID        uuid.UUID `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`
	ProjectTeacherID uuid.UUID `gorm:"column:project_teacher_id;type:uuid;not null;index" json:"project_teacher_id"`

	ProjectTitle       string `gorm:"column:project_title;size:200;not null" json:"project_title"`
	ProjectDescription string `gorm:"column:project_description;type:text" json:"project_description"`

	ProjectMaxStudents       int `gorm:"column:project_max_students;not null;default:1" json:"project_max_students"`
	ProjectCurrentStudents   int `gorm:"column:project_current_students;not null;default:0" json:"project_current_students"`
	ProjectTotalApplications int `gorm:"column:project_total_applications;not null;default:0" json:"project_total_applications"`

	ProjectIsActive bool `gorm:"column:project_is_active;not null;default:true" json:"project_is_active"`

	ProjectCreatedAt time.Time      `gorm:"column:project_created_at;autoCreateTime" json:"project_created_at"`
	ProjectUpdatedAt time.Time      `gorm:"column:project_updated_at;autoUpdateTime" json:"project_updated_at"`
	ProjectDeletedAt gorm.DeletedAt `gorm:"column:project_deleted_at;index" json:"-"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

func (p *ProjectModel) BeforeCreate(tx *gorm.DB) error {
	if p.ProjectID == uuid.Nil {
		p.ProjectID = uuid.New()
	}
	return nil
}

// MaxApplications is the application ceiling: max students plus two spares so
// a teacher always has someone to fall back on after rejections.
func (p *ProjectModel) MaxApplications() int {
	return p.ProjectMaxStudents + ExtraApplicationSlots
}

func (p *ProjectModel) IsFull() bool {
	return p.ProjectCurrentStudents >= p.ProjectMaxStudents
}

func (p *ProjectModel) ApplicationsFull() bool {
	return p.ProjectTotalApplications >= p.MaxApplications()
}
