package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifService "gradhub_backend/internals/features/notifications/notification/service"
	applicationController "gradhub_backend/internals/features/projects/application/controller"
)

// ApplicationUserRoutes mounts the student-side application endpoints.
func ApplicationUserRoutes(user fiber.Router, db *gorm.DB, notifications *notifService.NotificationService) {
	ctrl := applicationController.NewApplicationController(db, notifications)

	apps := user.Group("/applications")
	apps.Post("/", ctrl.Apply)
	apps.Get("/", ctrl.MyApplications)
	apps.Delete("/:id", ctrl.Withdraw)
}

// ApplicationTeacherRoutes mounts the review endpoints.
func ApplicationTeacherRoutes(teacher fiber.Router, db *gorm.DB, notifications *notifService.NotificationService) {
	ctrl := applicationController.NewApplicationController(db, notifications)

	apps := teacher.Group("/applications")
	apps.Get("/", ctrl.PendingForTeacher)
	apps.Post("/:id/review", ctrl.Review)
}
