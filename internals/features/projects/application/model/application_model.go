package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	projectModel "gradhub_backend/internals/features/projects/project/model"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// ApplicationModel links one student to one project. The composite unique
// index on (student, project) is the defense-in-depth backstop; the service
// re-validates inside the transaction before inserting.
type ApplicationModel struct {
	ApplicationID        uuid.UUID `gorm:"column:application_id;type:uuid;primaryKey" json:"application_id"`
	ApplicationStudentID uuid.UUID `gorm:"column:application_student_id;type:uuid;not null;uniqueIndex:idx_student_project" json:"application_student_id"`
	ApplicationProjectID uuid.UUID `gorm:"column:application_project_id;type:uuid;not null;uniqueIndex:idx_student_project" json:"application_project_id"`

	ApplicationStatus  ApplicationStatus `gorm:"column:application_status;type:varchar(20);not null;default:'pending';index" json:"application_status"`
	ApplicationMessage string            `gorm:"column:application_message;type:text" json:"application_message"`

	ApplicationReviewNote *string    `gorm:"column:application_review_note;type:text" json:"application_review_note,omitempty"`
	ApplicationReviewedAt *time.Time `gorm:"column:application_reviewed_at" json:"application_reviewed_at,omitempty"`

	ApplicationCreatedAt time.Time `gorm:"column:application_created_at;autoCreateTime" json:"application_created_at"`
	ApplicationUpdatedAt time.Time `gorm:"column:application_updated_at;autoUpdateTime" json:"application_updated_at"`

	// eager-loaded for review listings and notification denormalization
	Project *projectModel.ProjectModel `gorm:"foreignKey:ApplicationProjectID;references:ProjectID" json:"project,omitempty"`
}

func (ApplicationModel) TableName() string {
	return "project_applications"
}

func (a *ApplicationModel) BeforeCreate(tx *gorm.DB) error {
	if a.ApplicationID == uuid.Nil {
		a.ApplicationID = uuid.New()
	}
	return nil
}

func (a *ApplicationModel) IsPending() bool {
	return a.ApplicationStatus == StatusPending
}
