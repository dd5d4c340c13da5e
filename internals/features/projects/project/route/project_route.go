package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	projectController "gradhub_backend/internals/features/projects/project/controller"
)

// ProjectTeacherRoutes mounts the project lifecycle endpoints behind the
// teacher group.
func ProjectTeacherRoutes(teacher fiber.Router, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)

	projects := teacher.Group("/projects")
	projects.Get("/", ctrl.MyProjects)
	projects.Post("/", ctrl.Create)
	projects.Put("/:id", ctrl.Update)
	projects.Delete("/:id", ctrl.Delete)
}

// ProjectUserRoutes mounts the browse endpoints for any signed-in user.
func ProjectUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)

	projects := user.Group("/projects")
	projects.Get("/", ctrl.Browse)
	projects.Get("/:id", ctrl.Detail)
}
