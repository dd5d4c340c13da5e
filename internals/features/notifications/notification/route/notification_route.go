package route

import (
	"github.com/gofiber/fiber/v2"

	notifController "gradhub_backend/internals/features/notifications/notification/controller"
	notifService "gradhub_backend/internals/features/notifications/notification/service"
)

// NotificationUserRoutes mounts the per-user notification endpoints and the
// quota-alert toggles, sharing the scheduler's service instance.
func NotificationUserRoutes(user fiber.Router, svc *notifService.NotificationService) {
	ctrl := notifController.NewNotificationController(svc)

	notifications := user.Group("/notifications")
	notifications.Get("/", ctrl.List)
	notifications.Get("/unread-count", ctrl.UnreadCount)
	notifications.Put("/read-all", ctrl.MarkAllAsRead)
	notifications.Put("/:id/read", ctrl.MarkAsRead)
	notifications.Delete("/:id", ctrl.Delete)

	user.Post("/projects/:project_id/quota-alert", ctrl.CreateQuotaAlert)
	user.Delete("/projects/:project_id/quota-alert", ctrl.RemoveQuotaAlert)
}
