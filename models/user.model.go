package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string     `json:"first_name" gorm:"default:''"`
	LastName            string     `json:"last_name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Password            string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	Image               string     `json:"image" gorm:"default:''"`
	Bio                 string     `json:"bio" gorm:"default:''"`
	AccStatus           bool       `json:"acc_status" gorm:"default:true"` // active account flag
	IsProfileCompleted  bool       `json:"is_profile_completed" gorm:"default:false"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
