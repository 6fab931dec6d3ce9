package mediaRoutes

import (
	mediaControllers "lms/controllers/media"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// SetupMediaRoutes sets up upload/delete routes delegating to the media host
func SetupMediaRoutes(app *fiber.App) {
	group := app.Group("/media", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor))

	group.Post("/upload", mediaControllers.Upload)
	group.Post("/bulk-upload", mediaControllers.BulkUpload)
	group.Delete("/:id", mediaControllers.Delete)
}
