package studentRoutes

import (
	courseControllers "lms/controllers/course"
	orderControllers "lms/controllers/order"
	progressControllers "lms/controllers/progress"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"
	orderValidators "lms/validators/order"
	progressValidators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up catalog, order and progress routes for students
func SetupStudentRoutes(app *fiber.App) {
	group := app.Group("/student", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent))

	// Catalog (published courses only)
	group.Get("/course", courseValidators.CourseList(), courseControllers.GetPublishedCourses)
	group.Get("/course/:id", courseValidators.CourseID(), courseControllers.GetStudentCourseDetails)
	group.Get("/course/:id/purchase-info", courseValidators.CourseID(), courseControllers.CheckCoursePurchaseInfo)

	// Payment orders
	group.Post("/order", orderValidators.CreateOrder(), orderControllers.CreateOrder)
	group.Post("/order/capture", orderValidators.CaptureOrder(), orderControllers.CapturePayment)
	group.Get("/courses-bought", orderControllers.GetCoursesBought)

	// Progress tracking
	group.Post("/course-progress", progressValidators.MarkLecture(), progressControllers.MarkLectureViewed)
	group.Get("/course-progress/:id", progressValidators.ProgressCourseID(), progressControllers.GetProgress)
	group.Post("/course-progress/:id/reset", progressValidators.ProgressCourseID(), progressControllers.ResetProgress)
}
