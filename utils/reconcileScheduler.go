package utils

import (
	"lms/database"
	"lms/models"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeReconcileScheduler sets up the order reconciliation job.
// Payment capture and enrollment are written in one transaction, but a
// completed order can still lack its enrollment row after a crash between
// provider capture and local commit; this job repairs such orders.
func InitializeReconcileScheduler() {
	log.Println("[ORDER-RECONCILER] Initializing order reconciliation scheduler...")

	c := cron.New()

	// Run hourly
	c.AddFunc("@hourly", func() {
		log.Println("[ORDER-RECONCILER] Running order reconciliation...")
		ReconcileOrders()
	})

	c.Start()
	log.Println("[ORDER-RECONCILER] Order reconciliation scheduler started - runs hourly")
}

// ReconcileOrders finds completed orders with no enrollment row and creates
// the missing enrollment. Safe to run repeatedly.
func ReconcileOrders() {
	db := database.Database.Db

	var orders []models.Order
	if err := db.
		Where("status = ? AND is_deleted = false", models.OrderStatusCompleted).
		Where("NOT EXISTS (SELECT 1 FROM enrollments e WHERE e.order_id = orders.id AND e.is_deleted = false)").
		Find(&orders).Error; err != nil {
		log.Printf("[ORDER-RECONCILER] Error fetching unreconciled orders: %v", err)
		return
	}

	if len(orders) == 0 {
		return
	}
	log.Printf("[ORDER-RECONCILER] Found %d completed orders without enrollment", len(orders))

	for _, order := range orders {
		var user models.User
		if err := db.Where("id = ?", order.UserID).First(&user).Error; err != nil {
			log.Printf("[ORDER-RECONCILER] Error fetching user %d: %v", order.UserID, err)
			continue
		}

		// A concurrent enrollment for the same pair may exist from another
		// order; the unique (course, student) index keeps this idempotent
		var existing models.Enrollment
		err := db.Where("course_id = ? AND user_id = ? AND is_deleted = false", order.CourseID, order.UserID).
			First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("[ORDER-RECONCILER] Error checking enrollment for order %d: %v", order.ID, err)
			continue
		}

		enrollment := models.Enrollment{
			CourseID:     order.CourseID,
			UserID:       order.UserID,
			StudentName:  user.Name,
			StudentEmail: user.Email,
			PaidAmount:   order.Amount,
			OrderID:      order.ID,
		}
		if err := db.Create(&enrollment).Error; err != nil {
			log.Printf("[ORDER-RECONCILER] Error repairing order %d: %v", order.ID, err)
			continue
		}
		log.Printf("[ORDER-RECONCILER] Repaired enrollment for order %d (user %d, course %d)", order.ID, order.UserID, order.CourseID)
	}
}
