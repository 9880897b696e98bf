package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetToken is a single-use token emailed on forgot-password. Valid for one
// hour from creation.
type PasswordResetToken struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"-" gorm:"default:false"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// RegistrationInvite is an admin-issued invitation token. Valid for seven days;
// consumed once the invited user registers.
type RegistrationInvite struct {
	gorm.Model
	Email     string    `json:"email" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"default:'USER'"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"-" gorm:"default:false"`
	InvitedBy uint      `json:"invited_by"`
}
