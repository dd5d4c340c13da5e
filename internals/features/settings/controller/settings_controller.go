package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
	settingsDTO "gradhub_backend/internals/features/settings/dto"
	settingsService "gradhub_backend/internals/features/settings/service"
	helper "gradhub_backend/internals/helpers"
	helperAuth "gradhub_backend/internals/helpers/auth"
)

type SettingsController struct {
	Service *settingsService.SettingsService
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{Service: settingsService.NewSettingsService(db)}
}

var validateSettings = validator.New()

// GET /api/a/settings
func (h *SettingsController) List(c *fiber.Ctx) error {
	rows, err := h.Service.List()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list settings")
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /api/a/settings/:key
func (h *SettingsController) Get(c *fiber.Ctx) error {
	key := c.Params("key")

	value, found, err := h.Service.Get(key)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read setting")
	}
	if !found {
		return helper.JsonError(c, fiber.StatusNotFound, "Setting not found")
	}

	return helper.JsonOK(c, "OK", fiber.Map{"key": key, "value": value})
}

// PUT /api/a/settings/:key
func (h *SettingsController) Upsert(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	key := c.Params("key")

	var req settingsDTO.UpsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateSettings.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row, err := h.Service.Upsert(key, req.Value, req.Description, adminID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save setting")
	}

	return helper.JsonOK(c, "Setting saved", row)
}

// GET /api/public/application-deadline
//
// Published without auth so the landing page can show the countdown.
func (h *SettingsController) ApplicationDeadline(c *fiber.Ctx) error {
	deadline, found, err := h.Service.GetTime(constants.SettingApplicationDeadline)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read deadline")
	}
	if !found {
		return helper.JsonOK(c, "OK", fiber.Map{"deadline": nil})
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"deadline": deadline.Format(time.RFC3339),
		"passed":   time.Now().After(deadline),
	})
}
