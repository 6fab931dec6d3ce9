package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	InstructorID   uint                        `json:"instructor_id" gorm:"index;not null"`
	InstructorName string                      `json:"instructor_name"`
	Title          string                      `json:"title"`
	Category       string                      `json:"category"`
	Level          string                      `json:"level"` // BEGINNER, INTERMEDIATE, ADVANCED
	Language       string                      `json:"language"`
	Subtitle       string                      `json:"subtitle"`
	Description    string                      `json:"description" gorm:"type:text"`
	ImageURL       string                      `json:"image_url"`
	ImagePublicID  string                      `json:"image_public_id"`
	Pricing        float64                     `json:"pricing" gorm:"default:0"`
	Objectives     datatypes.JSONSlice[string] `json:"objectives"`
	WelcomeMessage string                      `json:"welcome_message"`
	IsPublished    bool                        `json:"is_published" gorm:"default:false"`
	Lectures       []Lecture                   `json:"lectures"`
	IsDeleted      bool                        `json:"-" gorm:"default:false"`
}

// Lecture is one video entry in a course's ordered curriculum
type Lecture struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	VideoURL    string `json:"video_url"`
	PublicID    string `json:"public_id"` // media-store object key
	FreePreview bool   `json:"free_preview" gorm:"default:false"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // position in curriculum
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
