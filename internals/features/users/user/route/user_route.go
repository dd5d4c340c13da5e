package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "gradhub_backend/internals/features/users/user/controller"
)

// UserAdminRoutes registers the account management endpoints. The caller is
// expected to mount these behind the admin group middleware.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := admin.Group("/users")
	users.Get("/", ctrl.List)
	users.Post("/", ctrl.Create)
	users.Post("/bulk-upload", ctrl.BulkUpload)
	users.Get("/:id", ctrl.Detail)
	users.Put("/:id", ctrl.Update)
	users.Patch("/:id/activate", ctrl.SetActive(true))
	users.Patch("/:id/deactivate", ctrl.SetActive(false))
	users.Delete("/:id", ctrl.Delete)
}
