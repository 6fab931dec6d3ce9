package instructorRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up course management routes for instructors
func SetupInstructorRoutes(app *fiber.App) {
	group := app.Group("/instructor/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor))

	group.Get("/", courseValidators.CourseList(), courseControllers.GetInstructorCourses)
	group.Post("/", courseValidators.SaveCourse(), courseControllers.CreateCourse)
	group.Get("/:id", courseValidators.CourseID(), courseControllers.GetInstructorCourseDetails)
	group.Put("/:id", courseValidators.CourseID(), courseValidators.SaveCourse(), courseControllers.UpdateCourse)
	group.Delete("/:id", courseValidators.CourseID(), courseControllers.DeleteCourse)
	group.Patch("/:id/publish", courseValidators.CourseID(), courseControllers.TogglePublishCourse)
}
