package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// lectureOrder keeps curriculum ordering stable on every preload
func lectureOrder(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false).Order("order_index asc")
}

// GetPublishedCourses lists the student-facing catalog: published courses
// only, with optional category/level/language filters and price/title sorting
func GetPublishedCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*courseValidator.CourseListRequest)
	if !ok {
		reqData = &courseValidator.CourseListRequest{}
	}

	db := database.Database.Db.Model(&models.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false)

	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}
	if reqData.Language != "" {
		db = db.Where("language = ?", reqData.Language)
	}

	switch reqData.SortBy {
	case "price-lowtohigh":
		db = db.Order("pricing asc")
	case "price-hightolow":
		db = db.Order("pricing desc")
	case "title-atoz":
		db = db.Order("title asc")
	case "title-ztoa":
		db = db.Order("title desc")
	default:
		db = db.Order("created_at desc")
	}

	// Set default pagination
	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).
		Preload("Lectures", lectureOrder).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetStudentCourseDetails returns one course; the published flag is enforced
// on direct lookups too, not just the listing
func GetStudentCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.
		Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Preload("Lectures", lectureOrder).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CheckCoursePurchaseInfo reports whether the caller already owns the course
func CheckCoursePurchaseInfo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var enrollment models.Enrollment
	err := database.Database.Db.
		Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userId, false).
		First(&enrollment).Error

	purchased := err == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase info fetched!", fiber.Map{
		"purchased": purchased,
	})
}
