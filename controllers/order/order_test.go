package orderController_test

import (
	"bytes"
	"encoding/json"
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

// fakeProvider mimics the payment provider: one known order and two payments,
// one captured and one failed
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc",
			"amount":   body.Amount,
			"currency": body.Currency,
			"receipt":  body.Receipt,
			"status":   "created",
		})
	})
	mux.HandleFunc("GET /payments/pay_ok", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "pay_ok",
			"order_id": "order_abc",
			"amount":   4999,
			"currency": "USD",
			"status":   "captured",
		})
	})
	mux.HandleFunc("GET /payments/pay_bad", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "pay_bad",
			"order_id": "order_abc",
			"amount":   4999,
			"currency": "USD",
			"status":   "failed",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupOrderTest(t *testing.T) (*fiber.App, models.User, string, models.Course) {
	t.Helper()

	provider := fakeProvider(t)
	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		SaltRound:        bcrypt.MinCost,
		PaymentApiURL:    provider.URL,
		PaymentKeyID:     "key_test",
		PaymentKeySecret: "secret_test",
		PaymentCurrency:  "USD",
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
		InstructorID:   99,
		InstructorName: "Ina Structor",
		Title:          "Go Basics",
		Category:       "programming",
		Level:          "BEGINNER",
		Language:       "English",
		Pricing:        49.99,
		IsPublished:    true,
	}
	require.NoError(t, db.Create(&course).Error)

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

func createPendingOrder(t *testing.T, app *fiber.App, token string, courseID uint) uint {
	t.Helper()
	resp, err := app.Test(authedJSON("POST", "/student/order", token, map[string]interface{}{
		"courseId": courseID,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := decodeData(t, resp)
	order := data["order"].(map[string]interface{})
	return uint(order["ID"].(float64))
}

func TestCreateOrderPersistsPending(t *testing.T) {
	app, _, token, course := setupOrderTest(t)

	orderID := createPendingOrder(t, app, token, course.ID)

	var order models.Order
	require.NoError(t, database.Database.Db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "order_abc", order.PaymentOrderID)
	assert.Equal(t, 49.99, order.Amount)
}

func TestCreateOrderUnpublishedCourse(t *testing.T) {
	app, _, token, course := setupOrderTest(t)

	require.NoError(t, database.Database.Db.Model(&course).Update("is_published", false).Error)

	resp, err := app.Test(authedJSON("POST", "/student/order", token, map[string]interface{}{
		"courseId": course.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateOrderProviderDown(t *testing.T) {
	app, _, token, course := setupOrderTest(t)

	config.AppConfig.PaymentApiURL = "http://127.0.0.1:1" // nothing listens here

	resp, err := app.Test(authedJSON("POST", "/student/order", token, map[string]interface{}{
		"courseId": course.ID,
	}), 10_000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCaptureCompletesAndEnrollsExactlyOnce(t *testing.T) {
	app, student, token, course := setupOrderTest(t)

	orderID := createPendingOrder(t, app, token, course.ID)

	capture := map[string]interface{}{
		"orderId":   orderID,
		"paymentId": "pay_ok",
	}

	resp, err := app.Test(authedJSON("POST", "/student/order/capture", token, capture))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var order models.Order
	require.NoError(t, database.Database.Db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, "pay_ok", order.PaymentID)

	// Retrying the capture with the same provider payment id is a no-op
	resp, err = app.Test(authedJSON("POST", "/student/order/capture", token, capture))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollments int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("course_id = ? AND user_id = ?", course.ID, student.ID).
		Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)

	// Owning the course blocks a second order
	resp, err = app.Test(authedJSON("POST", "/student/order", token, map[string]interface{}{
		"courseId": course.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCaptureFailedPaymentIsTerminal(t *testing.T) {
	app, student, token, course := setupOrderTest(t)

	orderID := createPendingOrder(t, app, token, course.ID)

	resp, err := app.Test(authedJSON("POST", "/student/order/capture", token, map[string]interface{}{
		"orderId":   orderID,
		"paymentId": "pay_bad",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var order models.Order
	require.NoError(t, database.Database.Db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusFailed, order.Status)

	// A failed order never transitions again, even with a captured payment
	resp, err = app.Test(authedJSON("POST", "/student/order/capture", token, map[string]interface{}{
		"orderId":   orderID,
		"paymentId": "pay_ok",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, database.Database.Db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusFailed, order.Status)

	var enrollments int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("course_id = ? AND user_id = ?", course.ID, student.ID).
		Count(&enrollments)
	assert.Equal(t, int64(0), enrollments)
}

func TestCoursesBoughtListsEnrollment(t *testing.T) {
	app, _, token, course := setupOrderTest(t)

	orderID := createPendingOrder(t, app, token, course.ID)
	resp, err := app.Test(authedJSON("POST", "/student/order/capture", token, map[string]interface{}{
		"orderId":   orderID,
		"paymentId": "pay_ok",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(authedJSON("GET", "/student/courses-bought", token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	bought := data["courses"].([]interface{})
	require.Len(t, bought, 1)
	entry := bought[0].(map[string]interface{})
	courseData := entry["course"].(map[string]interface{})
	assert.Equal(t, "Go Basics", courseData["title"])
}
