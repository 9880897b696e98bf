package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description"`
	IntroVideoURL string `json:"intro_video_url" gorm:"default:''"`
	IntroImageURL string `json:"intro_image_url" gorm:"default:''"`
	Status        bool   `json:"status" gorm:"default:true"` // active courses are visible to users
	NrOfFiles     int    `json:"nr_of_files" gorm:"default:0"`
	Duration      int    `json:"duration" gorm:"default:0"` // seconds, summed from materials
	CreatedBy     uint   `json:"created_by" gorm:"index"`
	UpdatedBy     uint   `json:"updated_by"`
	IsDeleted     bool   `json:"-" gorm:"default:false"`

	Creator User         `json:"-" gorm:"foreignKey:CreatedBy"`
	Modules []CourseModule `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
}

type CourseModule struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	NrOfFiles   int    `json:"nr_of_files" gorm:"default:0"`
	Duration    int    `json:"duration" gorm:"default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`

	Course   Course          `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Sections []CourseSection `json:"sections,omitempty" gorm:"foreignKey:ModuleID"`
}

type CourseSection struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	NrOfFiles   int    `json:"nr_of_files" gorm:"default:0"`
	Duration    int    `json:"duration" gorm:"default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`

	Module    CourseModule     `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	Materials []CourseMaterial `json:"materials,omitempty" gorm:"foreignKey:CourseSectionID"`
}

type CourseMaterial struct {
	gorm.Model
	CourseSectionID uint   `json:"course_section_id" gorm:"index;not null"`
	Title           string `json:"title" gorm:"not null"`
	Type            string `json:"type" gorm:"default:'TEXT'"` // TEXT, VIDEO, FILE
	Content         string `json:"content"`
	MaterialURL     string `json:"material_url" gorm:"default:''"`
	SortOrder       int    `json:"sort_order" gorm:"default:0"`
	Duration        int    `json:"duration" gorm:"default:0"`
	CreatedBy       uint   `json:"created_by"`
	UpdatedBy       uint   `json:"updated_by"`
	IsDeleted       bool   `json:"-" gorm:"default:false"`

	Section CourseSection `json:"-" gorm:"foreignKey:CourseSectionID;constraint:OnDelete:CASCADE"`
}
