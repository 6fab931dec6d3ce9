package models

import (
	"time"

	"gorm.io/gorm"
)

// CourseProgress tracks a student's completion state for one course
type CourseProgress struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"index:idx_progress_user_course,unique;not null"`
	CourseID       uint       `json:"course_id" gorm:"index:idx_progress_user_course,unique;not null"`
	CompletionPct  float64    `json:"completion_pct" gorm:"default:0"` // 0-100
	Completed      bool       `json:"completed" gorm:"default:false"`
	CompletionDate *time.Time `json:"completion_date"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	IsDeleted      bool       `json:"-" gorm:"default:false"`
}

// LectureView records that a student watched one lecture of a course
type LectureView struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index:idx_view_user_course_lecture,unique;not null"`
	CourseID  uint      `json:"course_id" gorm:"index:idx_view_user_course_lecture,unique;not null"`
	LectureID uint      `json:"lecture_id" gorm:"index:idx_view_user_course_lecture,unique;not null"`
	ViewedAt  time.Time `json:"viewed_at"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}
