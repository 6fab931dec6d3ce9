package orderValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	CourseID uint `json:"courseId" validate:"required,gt=0"`
}

type CaptureOrderRequest struct {
	OrderID   uint   `json:"orderId" validate:"required,gt=0"`
	PaymentID string `json:"paymentId" validate:"required"`
}

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateOrderRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.CollectErrors(err))
		}

		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}

func CaptureOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CaptureOrderRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.CollectErrors(err))
		}

		c.Locals("validatedCapture", reqData)
		return c.Next()
	}
}
