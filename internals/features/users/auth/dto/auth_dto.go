package dto

import (
	userModel "gradhub_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	FullName      string `json:"full_name" validate:"required,min=3,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	StudentNumber string `json:"student_number" validate:"required,min=4,max=20"`
	CourseCode    string `json:"course_code" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	// email or student number
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	UserID        string  `json:"user_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	StudentNumber *string `json:"student_number,omitempty"`
	CourseCode    *string `json:"course_code,omitempty"`
	SicilNumber   *string `json:"sicil_number,omitempty"`
	ProjectQuota  *int    `json:"project_quota,omitempty"`
	IsActive      bool    `json:"is_active"`
}

func ToUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		UserID:        u.UserID.String(),
		FullName:      u.UserFullName,
		Email:         u.UserEmail,
		Role:          u.UserRole,
		StudentNumber: u.UserStudentNumber,
		CourseCode:    u.UserCourseCode,
		SicilNumber:   u.UserSicilNumber,
		ProjectQuota:  u.UserProjectQuota,
		IsActive:      u.UserIsActive,
	}
}
