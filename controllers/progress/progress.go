package progressController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	progressValidator "lms/validators/progress"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// computePercentage derives the completion percentage from viewed lectures
// over curriculum length, clamped to [0,100]
func computePercentage(viewed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(viewed) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// MarkLectureViewed records a lecture completion and recomputes the course
// percentage; marking the same lecture twice is a no-op for the percentage
func MarkLectureViewed(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedMark").(*progressValidator.MarkLectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Only enrolled students accumulate progress
	var enrollment models.Enrollment
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", reqData.CourseID, userId, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var lecture models.Lecture
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.LectureID, reqData.CourseID, false).
		First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in this course!", nil)
	}

	// Idempotent: a repeated mark leaves the view row untouched
	var view models.LectureView
	err := db.Where("user_id = ? AND course_id = ? AND lecture_id = ? AND is_deleted = ?",
		userId, reqData.CourseID, reqData.LectureID, false).First(&view).Error
	if err == gorm.ErrRecordNotFound {
		view = models.LectureView{
			UserID:    userId,
			CourseID:  reqData.CourseID,
			LectureID: reqData.LectureID,
			ViewedAt:  time.Now(),
		}
		if err := db.Create(&view).Error; err != nil {
			log.Printf("Error recording lecture view: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	progress, err := recomputeProgress(db, userId, reqData.CourseID)
	if err != nil {
		log.Printf("Error recomputing progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", progress)
}

// recomputeProgress upserts the CourseProgress row from current view counts
func recomputeProgress(db *gorm.DB, userID, courseID uint) (*models.CourseProgress, error) {
	var total int64
	if err := db.Model(&models.Lecture{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&total).Error; err != nil {
		return nil, err
	}

	// Count only views pointing at lectures still in the curriculum
	var viewed int64
	if err := db.Model(&models.LectureView{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Where("lecture_id IN (?)", db.Model(&models.Lecture{}).Select("id").
			Where("course_id = ? AND is_deleted = ?", courseID, false)).
		Count(&viewed).Error; err != nil {
		return nil, err
	}

	pct := computePercentage(viewed, total)
	now := time.Now()

	var progress models.CourseProgress
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.CourseProgress{
			UserID:   userID,
			CourseID: courseID,
		}
	} else if err != nil {
		return nil, err
	}

	progress.CompletionPct = pct
	progress.LastAccessedAt = now
	if pct >= 100 {
		if !progress.Completed {
			progress.Completed = true
			progress.CompletionDate = &now
		}
	} else {
		progress.Completed = false
		progress.CompletionDate = nil
	}

	if err := db.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetProgress returns the caller's progress for course :id, or an empty
// default record when nothing has been tracked yet
func GetProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var progress models.CourseProgress
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).
		First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.CourseProgress{UserID: userId, CourseID: courseID}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	} else {
		// A curriculum edit replaces lectures and strands old views, so the
		// stored percentage can be stale; always derive it from current counts
		updated, rerr := recomputeProgress(db, userId, courseID)
		if rerr != nil {
			log.Printf("Error recomputing progress: %v", rerr)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		progress = *updated
	}

	var views []models.LectureView
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseID, false).
		Order("viewed_at asc").
		Find(&views).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched!", fiber.Map{
		"progress":     progress,
		"lectureViews": views,
	})
}

// ResetProgress clears the caller's lecture views and percentage for a course
func ResetProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	tx := db.Begin()

	// Views are removed outright so the unique (user, course, lecture) index
	// does not block re-marking after a reset
	if err := tx.Unscoped().
		Where("user_id = ? AND course_id = ?", userId, courseID).
		Delete(&models.LectureView{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset progress!", nil)
	}

	if err := tx.Model(&models.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", userId, courseID).
		Updates(map[string]interface{}{
			"completion_pct":   0,
			"completed":        false,
			"completion_date":  nil,
			"last_accessed_at": time.Now(),
		}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset progress!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress reset successfully!", nil)
}
