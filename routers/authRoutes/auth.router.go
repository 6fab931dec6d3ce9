package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/signin", authValidators.Login(), authControllers.Login)
	authGroup.Post("/verify", middleware.JWTMiddleware, authControllers.Verify)
	authGroup.Put("/change/password", middleware.JWTMiddleware, authValidators.ChangePassword(), authControllers.ChangePassword)
}
