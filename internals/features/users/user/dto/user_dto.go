package dto

import (
	userModel "gradhub_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	FullName      string `json:"full_name" validate:"required,min=3,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Role          string `json:"role" validate:"required,oneof=student teacher admin"`
	StudentNumber string `json:"student_number" validate:"omitempty,min=4,max=20"`
	CourseCode    string `json:"course_code" validate:"omitempty,max=20"`
	SicilNumber   string `json:"sicil_number" validate:"omitempty,max=20"`
	ProjectQuota  *int   `json:"project_quota" validate:"omitempty,min=0,max=50"`
}

type UpdateUserRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,min=3,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	CourseCode   *string `json:"course_code" validate:"omitempty,max=20"`
	ProjectQuota *int    `json:"project_quota" validate:"omitempty,min=0,max=50"`
}

type UserItem struct {
	UserID        string  `json:"user_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	StudentNumber *string `json:"student_number,omitempty"`
	CourseCode    *string `json:"course_code,omitempty"`
	SicilNumber   *string `json:"sicil_number,omitempty"`
	ProjectQuota  *int    `json:"project_quota,omitempty"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
}

func ToUserItem(u *userModel.UserModel) UserItem {
	return UserItem{
		UserID:        u.UserID.String(),
		FullName:      u.UserFullName,
		Email:         u.UserEmail,
		Role:          u.UserRole,
		StudentNumber: u.UserStudentNumber,
		CourseCode:    u.UserCourseCode,
		SicilNumber:   u.UserSicilNumber,
		ProjectQuota:  u.UserProjectQuota,
		IsActive:      u.UserIsActive,
		CreatedAt:     u.UserCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToUserItems(users []userModel.UserModel) []UserItem {
	items := make([]UserItem, 0, len(users))
	for i := range users {
		items = append(items, ToUserItem(&users[i]))
	}
	return items
}
