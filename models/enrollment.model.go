package models

import "gorm.io/gorm"

// Enrollment records that a student owns a course; created exactly once per
// (course, student) pair when an order completes
type Enrollment struct {
	gorm.Model
	CourseID     uint    `json:"course_id" gorm:"index:idx_course_student,unique;not null"`
	UserID       uint    `json:"user_id" gorm:"index:idx_course_student,unique;not null"`
	StudentName  string  `json:"student_name"`
	StudentEmail string  `json:"student_email"`
	PaidAmount   float64 `json:"paid_amount" gorm:"default:0"`
	OrderID      uint    `json:"order_id" gorm:"index"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`
}
