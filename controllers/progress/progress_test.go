package progressController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	studentRoutes "lms/routers/studentRoutes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProgressTest(t *testing.T) (*fiber.App, models.User, string, models.Course) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	student := models.User{Name: "Stu Dent", Email: "stu@test.local", Role: models.RoleStudent, Password: string(hash)}
	require.NoError(t, db.Create(&student).Error)
	token, err := middleware.GenerateJWT(student.ID, student.Name, student.Role, student.Email)
	require.NoError(t, err)

	course := models.Course{
		InstructorID: 99,
		Title:        "Go Basics",
		Category:     "programming",
		Level:        "BEGINNER",
		Language:     "English",
		IsPublished:  true,
		Lectures: []models.Lecture{
			{Title: "One", OrderIndex: 0},
			{Title: "Two", OrderIndex: 1},
			{Title: "Three", OrderIndex: 2},
			{Title: "Four", OrderIndex: 3},
		},
	}
	require.NoError(t, db.Create(&course).Error)

	enrollment := models.Enrollment{
		CourseID:     course.ID,
		UserID:       student.ID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		PaidAmount:   49.99,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	app := fiber.New()
	studentRoutes.SetupStudentRoutes(app)
	return app, student, token, course
}

func authedJSON(method, target, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env struct {
		Status  bool                   `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Data
}

func markLecture(t *testing.T, app *fiber.App, token string, courseID, lectureID uint) *http.Response {
	t.Helper()
	resp, err := app.Test(authedJSON("POST", "/student/course-progress", token, map[string]interface{}{
		"courseId":  courseID,
		"lectureId": lectureID,
	}))
	require.NoError(t, err)
	return resp
}

func TestMarkLectureUpdatesPercentage(t *testing.T) {
	app, student, token, course := setupProgressTest(t)

	resp := markLecture(t, app, token, course.ID, course.Lectures[0].ID)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var progress models.CourseProgress
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&progress).Error)
	assert.Equal(t, 25.0, progress.CompletionPct)
	assert.False(t, progress.Completed)
}

func TestMarkLectureIsIdempotent(t *testing.T) {
	app, student, token, course := setupProgressTest(t)

	for i := 0; i < 5; i++ {
		resp := markLecture(t, app, token, course.ID, course.Lectures[1].ID)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var views int64
	database.Database.Db.Model(&models.LectureView{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&views)
	assert.Equal(t, int64(1), views)

	var progress models.CourseProgress
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&progress).Error)
	assert.Equal(t, 25.0, progress.CompletionPct)
}

func TestCompletingAllLecturesMarksCourseComplete(t *testing.T) {
	app, student, token, course := setupProgressTest(t)

	for _, lecture := range course.Lectures {
		resp := markLecture(t, app, token, course.ID, lecture.ID)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var progress models.CourseProgress
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&progress).Error)
	assert.Equal(t, 100.0, progress.CompletionPct)
	assert.True(t, progress.Completed)
	require.NotNil(t, progress.CompletionDate)
}

func TestMarkLectureRequiresEnrollment(t *testing.T) {
	app, _, _, course := setupProgressTest(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	outsider := models.User{Name: "Out Sider", Email: "out@test.local", Role: models.RoleStudent, Password: string(hash)}
	require.NoError(t, database.Database.Db.Create(&outsider).Error)
	token, err := middleware.GenerateJWT(outsider.ID, outsider.Name, outsider.Role, outsider.Email)
	require.NoError(t, err)

	resp := markLecture(t, app, token, course.ID, course.Lectures[0].ID)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMarkUnknownLecture(t *testing.T) {
	app, _, token, course := setupProgressTest(t)

	resp := markLecture(t, app, token, course.ID, 9999)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetProgressDefaultsWhenUntracked(t *testing.T) {
	app, _, token, course := setupProgressTest(t)

	resp, err := app.Test(authedJSON("GET", fmt.Sprintf("/student/course-progress/%d", course.ID), token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	progress := data["progress"].(map[string]interface{})
	assert.Equal(t, 0.0, progress["completion_pct"])
	assert.Equal(t, false, progress["completed"])
	assert.Empty(t, data["lectureViews"])
}

func TestGetProgressRecomputesAfterCurriculumReplace(t *testing.T) {
	app, student, token, course := setupProgressTest(t)

	for _, lecture := range course.Lectures {
		resp := markLecture(t, app, token, course.ID, lecture.ID)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// Replace the curriculum the way a course update does: old lectures go,
	// new ones arrive with fresh ids, stranding every recorded view
	db := database.Database.Db
	require.NoError(t, db.Where("course_id = ?", course.ID).Delete(&models.Lecture{}).Error)
	replacement := []models.Lecture{
		{CourseID: course.ID, Title: "New One", OrderIndex: 0},
		{CourseID: course.ID, Title: "New Two", OrderIndex: 1},
		{CourseID: course.ID, Title: "New Three", OrderIndex: 2},
		{CourseID: course.ID, Title: "New Four", OrderIndex: 3},
	}
	require.NoError(t, db.Create(&replacement).Error)

	resp, err := app.Test(authedJSON("GET", fmt.Sprintf("/student/course-progress/%d", course.ID), token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	progress := data["progress"].(map[string]interface{})
	assert.Equal(t, 0.0, progress["completion_pct"])
	assert.Equal(t, false, progress["completed"])

	var stored models.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&stored).Error)
	assert.Equal(t, 0.0, stored.CompletionPct)
	assert.False(t, stored.Completed)
	assert.Nil(t, stored.CompletionDate)
}

func TestResetProgressClearsViewsAndAllowsRemarking(t *testing.T) {
	app, student, token, course := setupProgressTest(t)

	for _, lecture := range course.Lectures[:2] {
		resp := markLecture(t, app, token, course.ID, lecture.ID)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(authedJSON("POST", fmt.Sprintf("/student/course-progress/%d/reset", course.ID), token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views int64
	database.Database.Db.Model(&models.LectureView{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&views)
	assert.Equal(t, int64(0), views)

	var progress models.CourseProgress
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&progress).Error)
	assert.Equal(t, 0.0, progress.CompletionPct)
	assert.False(t, progress.Completed)

	// Re-marking after reset works and rebuilds the percentage
	resp = markLecture(t, app, token, course.ID, course.Lectures[0].ID)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&progress).Error)
	assert.Equal(t, 25.0, progress.CompletionPct)
}
