package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserCourseProgress is the per-enrollment aggregate: one row per user and course,
// created at enrollment and mutated only by the progress service.
type UserCourseProgress struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID uint `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`

	CompletedSections int `json:"completed_sections" gorm:"default:0"`
	PendingSections   int `json:"pending_sections" gorm:"default:0"`
	CompletedModules  int `json:"completed_modules" gorm:"default:0"`
	PendingModules    int `json:"pending_modules" gorm:"default:0"`

	CompletedSectionIDs datatypes.JSONSlice[uint] `json:"completed_section_ids"`
	CompletedModuleIDs  datatypes.JSONSlice[uint] `json:"completed_module_ids"`

	// Awarded is a one-way latch: once scoreboard points have been granted for this
	// course they are never granted again, and un-completing sections does not
	// revoke them.
	Awarded bool `json:"awarded" gorm:"default:false"`

	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// UserCourseSectionProgress marks a section as completed by a user. Row existence is
// the only state: marking a section undone deletes the row.
type UserCourseSectionProgress struct {
	gorm.Model
	UserID          uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_section"`
	CourseSectionID uint `json:"course_section_id" gorm:"index;not null;uniqueIndex:idx_user_section"`

	User    User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Section CourseSection `json:"-" gorm:"foreignKey:CourseSectionID;constraint:OnDelete:CASCADE"`
}
