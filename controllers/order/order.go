package orderController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	orderValidator "lms/validators/order"
	"log"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateOrder opens an order with the payment provider and persists it as
// PENDING; nothing is written locally when the provider call fails
func CreateOrder(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedOrder").(*orderValidator.CreateOrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", reqData.CourseID, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Already enrolled students have nothing to buy
	var existingEnrollment models.Enrollment
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", course.ID, userId, false).
		First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already own this course!", nil)
	}

	currency := config.AppConfig.PaymentCurrency
	receipt := uuid.NewString()

	providerOrder, raw, err := utils.CreateProviderOrder(c.Context(), course.Pricing, currency, receipt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment provider error: "+err.Error(), nil)
	}

	order := models.Order{
		UserID:             userId,
		CourseID:           course.ID,
		CourseTitle:        course.Title,
		CourseImage:        course.ImageURL,
		InstructorID:       course.InstructorID,
		Amount:             course.Pricing,
		Currency:           currency,
		Receipt:            receipt,
		PaymentOrderID:     providerOrder.ID,
		Status:             models.OrderStatusPending,
		PaymentResponseRaw: datatypes.JSON(raw),
	}

	if err := db.Create(&order).Error; err != nil {
		log.Printf("Error saving order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order created successfully!", fiber.Map{
		"order":           order,
		"paymentOrderId":  providerOrder.ID,
		"paymentKeyId":    config.AppConfig.PaymentKeyID,
		"amount":          order.Amount,
		"currency":        order.Currency,
	})
}

// CapturePayment verifies the provider capture and, in one transaction, moves
// the order to COMPLETED and appends the enrollment. Re-capturing a terminal
// order returns its current state and never creates a second enrollment.
func CapturePayment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedCapture").(*orderValidator.CaptureOrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var order models.Order
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", reqData.OrderID, userId, false).
		First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	// Terminal orders never transition again; a retried capture with the same
	// payment id just reports the earlier outcome
	if order.IsTerminal() {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order already processed.", fiber.Map{
			"order": order,
		})
	}

	payment, raw, err := utils.FetchProviderPayment(c.Context(), reqData.PaymentID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment provider error: "+err.Error(), nil)
	}

	expectedAmount := int64(math.Round(order.Amount * 100))
	if !payment.Captured() || payment.OrderID != order.PaymentOrderID || payment.Amount != expectedAmount {
		order.Status = models.OrderStatusFailed
		order.PaymentID = payment.ID
		order.PaymentResponseRaw = datatypes.JSON(raw)
		if err := db.Save(&order).Error; err != nil {
			log.Printf("Error failing order %d: %v", order.ID, err)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment was not captured; order failed.", fiber.Map{
			"order": order,
		})
	}

	// Order completion and enrollment land in the same transaction so the two
	// documents can never disagree
	tx := db.Begin()

	order.Status = models.OrderStatusCompleted
	order.PaymentID = payment.ID
	order.PaymentResponseRaw = datatypes.JSON(raw)
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete order!", nil)
	}

	var existing models.Enrollment
	err = tx.Where("course_id = ? AND user_id = ? AND is_deleted = ?", order.CourseID, userId, false).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		enrollment := models.Enrollment{
			CourseID:     order.CourseID,
			UserID:       userId,
			StudentName:  user.Name,
			StudentEmail: user.Email,
			PaidAmount:   order.Amount,
			OrderID:      order.ID,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record enrollment!", nil)
		}
	} else if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record enrollment!", nil)
	}

	tx.Commit()

	go utils.SendEnrollmentEmail(user.Name, user.Email, order.CourseTitle, order.Amount, order.Currency)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment captured and enrollment recorded!", fiber.Map{
		"order": order,
	})
}

// GetCoursesBought lists the caller's enrollments with their course snapshots
func GetCoursesBought(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	courseByID := make(map[uint]models.Course, len(courseIDs))
	if len(courseIDs) > 0 {
		var courses []models.Course
		if err := db.Where("id IN ? AND is_deleted = ?", courseIDs, false).Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		for _, course := range courses {
			courseByID[course.ID] = course
		}
	}

	type boughtCourse struct {
		Enrollment models.Enrollment `json:"enrollment"`
		Course     models.Course     `json:"course"`
	}

	bought := make([]boughtCourse, 0, len(enrollments))
	for _, e := range enrollments {
		bought = append(bought, boughtCourse{Enrollment: e, Course: courseByID[e.CourseID]})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchased courses fetched!", fiber.Map{
		"courses": bought,
	})
}
