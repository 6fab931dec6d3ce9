package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func GetInstructorCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*courseValidator.CourseListRequest)
	if !ok {
		reqData = &courseValidator.CourseListRequest{}
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

	db := database.Database.Db.Model(&models.Course{}).
		Where("instructor_id = ? AND is_deleted = ?", userId, false)

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").
		Preload("Lectures", "is_deleted = false").
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

func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		InstructorID:   user.ID,
		InstructorName: user.Name,
		Title:          reqData.Title,
		Category:       reqData.Category,
		Level:          reqData.Level,
		Language:       reqData.Language,
		Subtitle:       reqData.Subtitle,
		Description:    reqData.Description,
		ImageURL:       reqData.ImageURL,
		ImagePublicID:  reqData.ImagePublicID,
		Pricing:        reqData.Pricing,
		Objectives:     reqData.Objectives,
		WelcomeMessage: reqData.WelcomeMessage,
		Lectures:       buildLectures(reqData.Lectures),
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func GetInstructorCourseDetails(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Lectures", lectureOrder).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	course.Title = reqData.Title
	course.Category = reqData.Category
	course.Level = reqData.Level
	course.Language = reqData.Language
	course.Subtitle = reqData.Subtitle
	course.Description = reqData.Description
	course.ImageURL = reqData.ImageURL
	course.ImagePublicID = reqData.ImagePublicID
	course.Pricing = reqData.Pricing
	course.Objectives = reqData.Objectives
	course.WelcomeMessage = reqData.WelcomeMessage

	// Curriculum is replaced wholesale; ordering comes from payload position
	tx := db.Begin()

	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	if err := tx.Where("course_id = ?", course.ID).Delete(&models.Lecture{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
	}

	lectures := buildLectures(reqData.Lectures)
	for i := range lectures {
		lectures[i].CourseID = course.ID
	}
	if len(lectures) > 0 {
		if err := tx.Create(&lectures).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
		}
	}

	tx.Commit()

	course.Lectures = lectures
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	tx := db.Begin()
	if err := tx.Model(&course).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Model(&models.Lecture{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// TogglePublishCourse flips the student-facing visibility of a course
func TogglePublishCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	course.IsPublished = !course.IsPublished
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course publish state updated!", fiber.Map{
		"id":          course.ID,
		"isPublished": course.IsPublished,
	})
}

func buildLectures(reqs []courseValidator.LectureRequest) []models.Lecture {
	lectures := make([]models.Lecture, 0, len(reqs))
	for i, l := range reqs {
		lectures = append(lectures, models.Lecture{
			Title:       l.Title,
			VideoURL:    l.VideoURL,
			PublicID:    l.PublicID,
			FreePreview: l.FreePreview,
			OrderIndex:  i,
		})
	}
	return lectures
}
