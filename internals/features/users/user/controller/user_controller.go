package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userDTO "gradhub_backend/internals/features/users/user/dto"
	userService "gradhub_backend/internals/features/users/user/service"
	helper "gradhub_backend/internals/helpers"
)

type UserController struct {
	Service *userService.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Service: userService.NewUserService(db)}
}

var validateUser = validator.New()

// GET /api/a/users?role=&search=&page=&per_page=
func (h *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	users, total, err := h.Service.List(userService.ListUsersFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	items := userDTO.ToUserItems(users)
	return helper.JsonOK(c, "OK", fiber.Map{
		"users":      items,
		"pagination": helper.BuildPagination(total, paging, len(items)),
	})
}

// GET /api/a/users/:id
func (h *UserController) Detail(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	user, err := h.Service.Get(userID)
	if err != nil {
		if errors.Is(err, userService.ErrUserNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	return helper.JsonOK(c, "OK", userDTO.ToUserItem(user))
}

// POST /api/a/users
func (h *UserController) Create(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateUser.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := h.Service.Create(userService.CreateUserInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		StudentNumber: req.StudentNumber,
		CourseCode:    req.CourseCode,
		SicilNumber:   req.SicilNumber,
		ProjectQuota:  req.ProjectQuota,
	})
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrEmailTaken):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, userService.ErrInvalidRole):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	}

	return helper.JsonCreated(c, "User created", userDTO.ToUserItem(user))
}

// PUT /api/a/users/:id
func (h *UserController) Update(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateUser.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := h.Service.Update(userID, userService.UpdateUserInput{
		FullName:     req.FullName,
		Email:        req.Email,
		CourseCode:   req.CourseCode,
		ProjectQuota: req.ProjectQuota,
	})
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrUserNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, userService.ErrEmailTaken):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
		}
	}

	return helper.JsonOK(c, "User updated", userDTO.ToUserItem(user))
}

// PATCH /api/a/users/:id/activate  and  /deactivate
func (h *UserController) SetActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
		}

		if err := h.Service.SetActive(userID, active); err != nil {
			if errors.Is(err, userService.ErrUserNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "User not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
		}

		msg := "User deactivated"
		if active {
			msg = "User activated"
		}
		return helper.JsonOK(c, msg, nil)
	}
}

// DELETE /api/a/users/:id
func (h *UserController) Delete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	if err := h.Service.Delete(userID); err != nil {
		if errors.Is(err, userService.ErrUserNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	return helper.JsonOK(c, "User deleted", nil)
}

// POST /api/a/users/bulk-upload (multipart, field "file", .xlsx)
func (h *UserController) BulkUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file upload")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
	}
	defer f.Close()

	result, err := h.Service.BulkUpload(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return helper.JsonOK(c, "Bulk upload processed", result)
}
