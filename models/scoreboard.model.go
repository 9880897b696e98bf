package models

import "gorm.io/gorm"

// Scoreboard holds a user's cumulative points across all completed courses.
// Rows are created lazily on the first award and never reset.
type Scoreboard struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
	Score  int  `json:"score" gorm:"default:0"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
