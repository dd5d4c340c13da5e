package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingsController "gradhub_backend/internals/features/settings/controller"
)

// SettingsAdminRoutes mounts the settings management endpoints.
func SettingsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := settingsController.NewSettingsController(db)

	settings := admin.Group("/settings")
	settings.Get("/", ctrl.List)
	settings.Get("/:key", ctrl.Get)
	settings.Put("/:key", ctrl.Upsert)
}

// SettingsPublicRoutes exposes the deadline read-only, no auth.
func SettingsPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := settingsController.NewSettingsController(db)

	public.Get("/application-deadline", ctrl.ApplicationDeadline)
}
