package progress

import (
	"errors"

	"gorm.io/gorm"

	"lms/models"
	"lms/services/scoreboard"
)

// Errors reported by the progress service. Controllers map these onto HTTP statuses;
// anything else is a database failure and surfaces as a 500.
var (
	ErrNotEnrolled      = errors.New("user is not enrolled in this course")
	ErrAlreadyEnrolled  = errors.New("user is already enrolled in this course")
	ErrAlreadyCompleted = errors.New("section is already marked as done")
	ErrEmptySection     = errors.New("section has no materials")
	ErrSectionNotFound  = errors.New("section not found")
	ErrCourseNotFound   = errors.New("course not found or not active")
)

// PointsForModules returns the scoreboard points granted for completing a course,
// keyed by the course's module count.
func PointsForModules(moduleCount int) int {
	switch {
	case moduleCount <= 0:
		return 0
	case moduleCount == 1:
		return 100
	case moduleCount == 2:
		return 111
	case moduleCount <= 4:
		return 123
	case moduleCount == 5:
		return 155
	default:
		return 199
	}
}

// Enroll creates the UserCourseProgress row for a user/course pair. Pending counters
// are snapshotted from the course structure as it exists right now.
func Enroll(db *gorm.DB, userID, courseID uint) (*models.UserCourseProgress, error) {
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing models.UserCourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var moduleIDs []uint
	if err := db.Model(&models.CourseModule{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Pluck("id", &moduleIDs).Error; err != nil {
		return nil, err
	}

	var sectionCount int64
	if len(moduleIDs) > 0 {
		if err := db.Model(&models.CourseSection{}).Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).Count(&sectionCount).Error; err != nil {
			return nil, err
		}
	}

	enrollment := models.UserCourseProgress{
		UserID:              userID,
		CourseID:            courseID,
		PendingSections:     int(sectionCount),
		PendingModules:      len(moduleIDs),
		CompletedSectionIDs: []uint{},
		CompletedModuleIDs:  []uint{},
	}

	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}

	return &enrollment, nil
}

// MarkSectionDone records a section completion for the user and rolls the change up
// through module and course aggregates. All writes happen in one transaction: the
// completion marker, the counter updates, and (on full course completion) the
// scoreboard award either all land or none do.
func MarkSectionDone(db *gorm.DB, userID, sectionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var section models.CourseSection
		if err := tx.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		// A section with zero content cannot be marked complete.
		var materialCount int64
		if err := tx.Model(&models.CourseMaterial{}).Where("course_section_id = ? AND is_deleted = ?", sectionID, false).Count(&materialCount).Error; err != nil {
			return err
		}
		if materialCount == 0 {
			return ErrEmptySection
		}

		var module models.CourseModule
		if err := tx.Where("id = ? AND is_deleted = ?", section.ModuleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		var enrollment models.UserCourseProgress
		if err := tx.Where("user_id = ? AND course_id = ?", userID, module.CourseID).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return err
		}

		var existing models.UserCourseSectionProgress
		if err := tx.Where("user_id = ? AND course_section_id = ?", userID, sectionID).First(&existing).Error; err == nil {
			return ErrAlreadyCompleted
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		marker := models.UserCourseSectionProgress{
			UserID:          userID,
			CourseSectionID: sectionID,
		}
		if err := tx.Create(&marker).Error; err != nil {
			return err
		}

		if !containsID(enrollment.CompletedSectionIDs, sectionID) {
			enrollment.CompletedSectionIDs = append(enrollment.CompletedSectionIDs, sectionID)
			enrollment.CompletedSections++
			if enrollment.PendingSections > 0 {
				enrollment.PendingSections--
			}
		}

		// Module rollup: the module is complete once every one of its sections is in
		// the completed set.
		var moduleSectionIDs []uint
		if err := tx.Model(&models.CourseSection{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Pluck("id", &moduleSectionIDs).Error; err != nil {
			return err
		}
		if allContained(moduleSectionIDs, enrollment.CompletedSectionIDs) && !containsID(enrollment.CompletedModuleIDs, module.ID) {
			enrollment.CompletedModuleIDs = append(enrollment.CompletedModuleIDs, module.ID)
			enrollment.CompletedModules++
			if enrollment.PendingModules > 0 {
				enrollment.PendingModules--
			}
		}

		// Course rollup: award points exactly once, when nothing is pending anymore.
		if enrollment.PendingSections == 0 && enrollment.PendingModules == 0 && !enrollment.Awarded {
			enrollment.Awarded = true

			var moduleCount int64
			if err := tx.Model(&models.CourseModule{}).Where("course_id = ? AND is_deleted = ?", module.CourseID, false).Count(&moduleCount).Error; err != nil {
				return err
			}
			if err := scoreboard.AddScore(tx, userID, PointsForModules(int(moduleCount))); err != nil {
				return err
			}
		}

		return tx.Save(&enrollment).Error
	})
}

// MarkSectionUndone removes a section completion. Undoing never touches the awarded
// latch or the scoreboard: points granted for finishing the course stay granted.
// Undoing a section that was never done is not an error.
func MarkSectionUndone(db *gorm.DB, userID, sectionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var section models.CourseSection
		if err := tx.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		var module models.CourseModule
		if err := tx.Where("id = ? AND is_deleted = ?", section.ModuleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		var enrollment models.UserCourseProgress
		if err := tx.Where("user_id = ? AND course_id = ?", userID, module.CourseID).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return err
		}

		if err := tx.Unscoped().Where("user_id = ? AND course_section_id = ?", userID, sectionID).Delete(&models.UserCourseSectionProgress{}).Error; err != nil {
			return err
		}

		if containsID(enrollment.CompletedSectionIDs, sectionID) {
			enrollment.CompletedSectionIDs = removeID(enrollment.CompletedSectionIDs, sectionID)
			if enrollment.CompletedSections > 0 {
				enrollment.CompletedSections--
			}
			enrollment.PendingSections++
		}

		if containsID(enrollment.CompletedModuleIDs, module.ID) {
			var moduleSectionIDs []uint
			if err := tx.Model(&models.CourseSection{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Pluck("id", &moduleSectionIDs).Error; err != nil {
				return err
			}
			if !allContained(moduleSectionIDs, enrollment.CompletedSectionIDs) {
				enrollment.CompletedModuleIDs = removeID(enrollment.CompletedModuleIDs, module.ID)
				if enrollment.CompletedModules > 0 {
					enrollment.CompletedModules--
				}
				enrollment.PendingModules++
			}
		}

		return tx.Save(&enrollment).Error
	})
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func allContained(ids []uint, in []uint) bool {
	for _, v := range ids {
		if !containsID(in, v) {
			return false
		}
	}
	return true
}

func removeID(ids []uint, id uint) []uint {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
