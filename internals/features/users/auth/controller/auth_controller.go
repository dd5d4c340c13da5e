package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "gradhub_backend/internals/features/users/auth/dto"
	authService "gradhub_backend/internals/features/users/auth/service"
	helper "gradhub_backend/internals/helpers"
	helperAuth "gradhub_backend/internals/helpers/auth"
)

type AuthController struct {
	Service *authService.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Service: authService.NewAuthService(db)}
}

var validateAuth = validator.New()

// POST /api/auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := h.Service.RegisterStudent(authService.RegisterInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		StudentNumber: req.StudentNumber,
		CourseCode:    req.CourseCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrEmailTaken),
			errors.Is(err, authService.ErrStudentNumberTaken):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Registration failed")
		}
	}

	return helper.JsonCreated(c, "Registration successful", authDTO.ToUserResponse(user))
}

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := h.Service.Login(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	access, err := authService.CreateAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Token creation failed")
	}
	refresh, err := authService.CreateRefreshToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Token creation failed")
	}

	return helper.JsonOK(c, "Login successful", authDTO.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.ToUserResponse(user),
	})
}

// POST /api/auth/refresh
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	claims, err := authService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	rawID, _ := claims["user_id"].(string)
	user, err := h.Service.GetUserByIDString(rawID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	access, err := authService.CreateAccessToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Token creation failed")
	}

	return helper.JsonOK(c, "Token refreshed", fiber.Map{"access_token": access})
}

// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No token provided")
	}
	if err := h.Service.Logout(raw); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}
	return helper.JsonOK(c, "Logged out", nil)
}

// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	user, err := h.Service.GetUser(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonOK(c, "OK", authDTO.ToUserResponse(user))
}

// POST /api/auth/change-password
func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := h.Service.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, authService.ErrWrongPassword) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Current password is wrong")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password change failed")
	}

	return helper.JsonOK(c, "Password changed", nil)
}
