package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
)

// UserModel represents the users table. Students and teachers live on the
// same row with role-specific nullable columns: students carry
// user_student_number + user_course_code, teachers carry user_sicil_number +
// user_project_quota.
type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserFullName string    `gorm:"column:user_full_name;size:100;not null" json:"user_full_name" validate:"required,min=3,max=100"`
	UserEmail    string    `gorm:"column:user_email;size:255;uniqueIndex;not null" json:"user_email" validate:"required,email"`
	UserPassword string    `gorm:"column:user_password;not null" json:"-"`
	UserRole     string    `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role" validate:"required,oneof=student teacher admin"`

	// student attributes
	UserStudentNumber *string `gorm:"column:user_student_number;size:20;uniqueIndex" json:"user_student_number,omitempty"`
	UserCourseCode    *string `gorm:"column:user_course_code;size:20" json:"user_course_code,omitempty"`

	// teacher attributes
	UserSicilNumber  *string `gorm:"column:user_sicil_number;size:20;uniqueIndex" json:"user_sicil_number,omitempty"`
	UserProjectQuota *int    `gorm:"column:user_project_quota" json:"user_project_quota,omitempty"`

	UserIsActive bool `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	if u.UserRole == "" {
		u.UserRole = constants.RoleStudent
	}
	return nil
}

func (u *UserModel) IsStudent() bool { return u.UserRole == constants.RoleStudent }
func (u *UserModel) IsTeacher() bool { return u.UserRole == constants.RoleTeacher }
func (u *UserModel) IsAdmin() bool   { return u.UserRole == constants.RoleAdmin }
