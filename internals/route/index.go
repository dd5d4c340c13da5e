package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gradhub_backend/internals/constants"
	notifRoute "gradhub_backend/internals/features/notifications/notification/route"
	notifService "gradhub_backend/internals/features/notifications/notification/service"
	applicationRoute "gradhub_backend/internals/features/projects/application/route"
	projectRoute "gradhub_backend/internals/features/projects/project/route"
	settingsRoute "gradhub_backend/internals/features/settings/route"
	authRoute "gradhub_backend/internals/features/users/auth/route"
	userRoute "gradhub_backend/internals/features/users/user/route"
	authMiddleware "gradhub_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes mounts every endpoint group:
//
//	/api/auth    public auth + token-bound account endpoints
//	/api/public  unauthenticated reads
//	/api/u       any signed-in user (students use these)
//	/api/t       teachers only
//	/api/a       admins only
func SetupRoutes(app *fiber.App, db *gorm.DB, notifications *notifService.NotificationService) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	settingsRoute.SettingsPublicRoutes(public, db)

	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
	)
	projectRoute.ProjectUserRoutes(user, db)
	applicationRoute.ApplicationUserRoutes(user, db, notifications)
	notifRoute.NotificationUserRoutes(user, notifications)

	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api/t",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("project management"), constants.StaffRoles...),
	)
	projectRoute.ProjectTeacherRoutes(teacher, db)
	applicationRoute.ApplicationTeacherRoutes(teacher, db, notifications)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("administration"), constants.AdminOnly...),
	)
	userRoute.UserAdminRoutes(admin, db)
	settingsRoute.SettingsAdminRoutes(admin, db)
}
