// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"soutenance_backend/internals/features/users/auth/controller"
	userModel "soutenance_backend/internals/features/users/user/model"
	"soutenance_backend/internals/middlewares"
	authMw "soutenance_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	ctl := controller.NewAuthController(db, v)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/refresh-token", ctl.Refresh)
	auth.Post("/logout", ctl.Logout)

	// registration creates staff accounts; admin only
	auth.Post("/register",
		middlewares.RegisterRateLimiter(),
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles("Only admins can create accounts", string(userModel.RoleAdmin)),
		ctl.Register,
	)

	auth.Get("/me", authMw.AuthMiddleware(db), ctl.Me)
}
