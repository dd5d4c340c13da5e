package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "gradhub_backend/internals/features/notifications/notification/service"
	applicationDTO "gradhub_backend/internals/features/projects/application/dto"
	applicationService "gradhub_backend/internals/features/projects/application/service"
	helper "gradhub_backend/internals/helpers"
	helperAuth "gradhub_backend/internals/helpers/auth"
)

type ApplicationController struct {
	Service *applicationService.ApplicationService
}

func NewApplicationController(db *gorm.DB, notifications *notifService.NotificationService) *ApplicationController {
	return &ApplicationController{
		Service: applicationService.NewApplicationService(db, notifications),
	}
}

var validateApplication = validator.New()

// POST /api/u/applications
func (h *ApplicationController) Apply(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req applicationDTO.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateApplication.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	app, err := h.Service.Apply(studentID, projectID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, applicationService.ErrProjectNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, applicationService.ErrProjectInactive),
			errors.Is(err, applicationService.ErrProjectFull),
			errors.Is(err, applicationService.ErrDeadlinePassed),
			errors.Is(err, applicationService.ErrAlreadyApproved),
			errors.Is(err, applicationService.ErrAlreadyApplied):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit application")
		}
	}

	return helper.JsonCreated(c, "Application submitted", applicationDTO.ToApplicationItem(app))
}

// GET /api/u/applications
func (h *ApplicationController) MyApplications(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	apps, err := h.Service.ListByStudent(studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list applications")
	}

	return helper.JsonOK(c, "OK", applicationDTO.ToApplicationItems(apps))
}

// DELETE /api/u/applications/:id
func (h *ApplicationController) Withdraw(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}

	if err := h.Service.Withdraw(studentID, applicationID); err != nil {
		switch {
		case errors.Is(err, applicationService.ErrNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, applicationService.ErrNotPending):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to withdraw application")
		}
	}

	return helper.JsonOK(c, "Application withdrawn", nil)
}

// GET /api/t/applications
func (h *ApplicationController) PendingForTeacher(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	apps, err := h.Service.ListForTeacher(teacherID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list applications")
	}

	return helper.JsonOK(c, "OK", applicationDTO.ToApplicationItems(apps))
}

// POST /api/t/applications/:id/review
func (h *ApplicationController) Review(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid application id")
	}

	var req applicationDTO.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateApplication.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	app, err := h.Service.Review(teacherID, applicationID, req.Decision == "approve", req.Note)
	if err != nil {
		switch {
		case errors.Is(err, applicationService.ErrNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, applicationService.ErrNotOwner):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, applicationService.ErrNotPending),
			errors.Is(err, applicationService.ErrCapacityReached):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review application")
		}
	}

	return helper.JsonOK(c, "Application reviewed", applicationDTO.ToApplicationItem(app))
}
