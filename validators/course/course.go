package courseValidator

import (
	"lms/middleware"
	"lms/validators"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type LectureRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	VideoURL    string `json:"videoUrl"`
	PublicID    string `json:"publicId"`
	FreePreview bool   `json:"freePreview"`
}

type CourseRequest struct {
	Title          string           `json:"title" validate:"required,min=3"`
	Category       string           `json:"category" validate:"required"`
	Level          string           `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Language       string           `json:"language" validate:"required"`
	Subtitle       string           `json:"subtitle"`
	Description    string           `json:"description" validate:"required,min=5"`
	ImageURL       string           `json:"imageUrl"`
	ImagePublicID  string           `json:"imagePublicId"`
	Pricing        float64          `json:"pricing" validate:"gte=0"`
	Objectives     []string         `json:"objectives"`
	WelcomeMessage string           `json:"welcomeMessage"`
	Lectures       []LectureRequest `json:"lectures" validate:"dive"`
}

type CourseListRequest struct {
	Page     *int   `query:"page" validate:"omitempty,gte=1"`
	Limit    *int   `query:"limit" validate:"omitempty,gte=1,lte=100"`
	Category string `query:"category"`
	Level    string `query:"level"`
	Language string `query:"language"`
	SortBy   string `query:"sortBy" validate:"omitempty,oneof=price-lowtohigh price-hightolow title-atoz title-ztoa"`
}

func SaveCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.CollectErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.CollectErrors(err))
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CourseID validates the :id path parameter and stores it as a uint
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}
