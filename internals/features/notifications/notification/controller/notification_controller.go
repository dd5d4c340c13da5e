package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	notifDTO "gradhub_backend/internals/features/notifications/notification/dto"
	notifService "gradhub_backend/internals/features/notifications/notification/service"
	helper "gradhub_backend/internals/helpers"
	helperAuth "gradhub_backend/internals/helpers/auth"
)

// NotificationController shares the long-lived service instance with the
// scheduler, so both sides use the same mailer and clock.
type NotificationController struct {
	Service *notifService.NotificationService
}

func NewNotificationController(svc *notifService.NotificationService) *NotificationController {
	return &NotificationController{Service: svc}
}

// GET /api/u/notifications
func (h *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	rows, err := h.Service.GetUserNotifications(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list notifications")
	}

	return helper.JsonOK(c, "OK", notifDTO.ToNotificationItems(rows))
}

// GET /api/u/notifications/unread-count
func (h *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	count, err := h.Service.UnreadCount(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	return helper.JsonOK(c, "OK", fiber.Map{"unread_count": count})
}

// PUT /api/u/notifications/:id/read
func (h *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	ok, err := h.Service.MarkAsRead(userID, notificationID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}

	return helper.JsonOK(c, "Notification marked as read", nil)
}

// PUT /api/u/notifications/read-all
func (h *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	updated, err := h.Service.MarkAllAsRead(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notifications")
	}

	return helper.JsonOK(c, "All notifications marked as read", fiber.Map{"updated": updated})
}

// DELETE /api/u/notifications/:id
func (h *NotificationController) Delete(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	ok, err := h.Service.Delete(userID, notificationID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notification")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}

	return helper.JsonOK(c, "Notification deleted", nil)
}

// POST /api/u/projects/:project_id/quota-alert
func (h *NotificationController) CreateQuotaAlert(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	alert, created, err := h.Service.CreateQuotaAlert(userID, projectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create quota alert")
	}

	if created {
		return helper.JsonCreated(c, "Quota alert created", alert)
	}
	return helper.JsonOK(c, "Quota alert already active", alert)
}

// DELETE /api/u/projects/:project_id/quota-alert
func (h *NotificationController) RemoveQuotaAlert(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid project id")
	}

	ok, err := h.Service.RemoveQuotaAlert(userID, projectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove quota alert")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "No active quota alert for this project")
	}

	return helper.JsonOK(c, "Quota alert removed", nil)
}
