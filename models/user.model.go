package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
)

type User struct {
	gorm.Model
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Role                string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR
	Password            string     `json:"-" gorm:"not null"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `json:"-" gorm:"default:false"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
