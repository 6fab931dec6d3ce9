package progressValidator

import (
	"lms/middleware"
	"lms/validators"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type MarkLectureRequest struct {
	CourseID  uint `json:"courseId" validate:"required,gt=0"`
	LectureID uint `json:"lectureId" validate:"required,gt=0"`
}

func MarkLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MarkLectureRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.CollectErrors(err))
		}

		c.Locals("validatedMark", reqData)
		return c.Next()
	}
}

// ProgressCourseID validates the :id path parameter and stores it as a uint
func ProgressCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}
