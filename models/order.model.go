package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusFailed    = "FAILED"
)

// Order tracks a payment-provider order for a course purchase.
// Status moves PENDING -> COMPLETED or PENDING -> FAILED and never leaves a
// terminal state.
type Order struct {
	gorm.Model
	UserID             uint           `json:"user_id" gorm:"index;not null"`
	CourseID           uint           `json:"course_id" gorm:"index;not null"`
	CourseTitle        string         `json:"course_title"`
	CourseImage        string         `json:"course_image"`
	InstructorID       uint           `json:"instructor_id"`
	Amount             float64        `json:"amount"`
	Currency           string         `json:"currency" gorm:"default:'USD'"`
	Receipt            string         `json:"receipt" gorm:"unique"`
	PaymentOrderID     string         `json:"payment_order_id" gorm:"index"` // provider order id
	PaymentID          string         `json:"payment_id" gorm:"index"`       // provider capture id
	Status             string         `json:"status" gorm:"default:'PENDING'"`
	PaymentResponseRaw datatypes.JSON `json:"-"`
	IsDeleted          bool           `json:"-" gorm:"default:false"`
}

// IsTerminal reports whether the order can no longer change state.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusFailed
}
