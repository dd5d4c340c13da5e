package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "gradhub_backend/internals/features/users/auth/controller"
	"gradhub_backend/internals/middlewares"
	authMiddleware "gradhub_backend/internals/middlewares/auth"
)

// AuthRoutes registers the public auth endpoints plus the token-bound ones.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh", ctrl.Refresh)

	protected := auth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ctrl.Logout)
	protected.Get("/me", ctrl.Me)
	protected.Post("/change-password", ctrl.ChangePassword)
}
