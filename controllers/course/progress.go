package courseController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"
	"lms/services/scoreboard"
	"lms/utils"
)

// EnrollInCourse creates the caller's progress row for a course.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	enrollment, err := progress.Enroll(database.Database.Db, userID, courseID)
	switch {
	case errors.Is(err, progress.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	case errors.Is(err, progress.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	case err != nil:
		log.Printf("Error enrolling user %d in course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// MarkSectionDone records a section completion for the caller.
func MarkSectionDone(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(uint)

	err := progress.MarkSectionDone(database.Database.Db, userID, sectionID)
	switch {
	case errors.Is(err, progress.ErrSectionNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	case errors.Is(err, progress.ErrEmptySection):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Section has no materials and cannot be completed!", nil)
	case errors.Is(err, progress.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	case errors.Is(err, progress.ErrAlreadyCompleted):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Section already marked as done!", nil)
	case err != nil:
		log.Printf("Error marking section %d done for user %d: %v", sectionID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark section as done!", nil)
	}

	// An award may have landed; drop the cached leaderboard.
	scoreboard.InvalidateCache(c.Context())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section marked as done successfully!", nil)
}

// MarkSectionUndone removes a section completion for the caller. Points already
// awarded stay on the scoreboard.
func MarkSectionUndone(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(uint)

	err := progress.MarkSectionUndone(database.Database.Db, userID, sectionID)
	switch {
	case errors.Is(err, progress.ErrSectionNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	case errors.Is(err, progress.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	case err != nil:
		log.Printf("Error marking section %d undone for user %d: %v", sectionID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark section as undone!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section marked as undone successfully!", nil)
}

type progressReportItem struct {
	ID                   uint    `json:"id"`
	UserID               uint    `json:"user_id"`
	CourseID             uint    `json:"course_id"`
	FirstName            string  `json:"first_name"`
	LastName             string  `json:"last_name"`
	Email                string  `json:"email"`
	CourseTitle          string  `json:"course_title"`
	CompletedSections    int     `json:"completed_sections"`
	PendingSections      int     `json:"pending_sections"`
	CompletedModules     int     `json:"completed_modules"`
	PendingModules       int     `json:"pending_modules"`
	Awarded              bool    `json:"awarded"`
	CompletionPercentage float64 `json:"completion_percentage"`
	CompletionStatus     string  `json:"completion_status"`
	StartedDate          string  `json:"started_date"`
}

// GetUserCourseProgress is the admin progress report, filterable by course and
// user. Completion percentage counts sections and modules as equal-weight items.
func GetUserCourseProgress(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.UserCourseProgress{}).
		Joins("JOIN users ON users.id = user_course_progresses.user_id").
		Joins("JOIN courses ON courses.id = user_course_progresses.course_id").
		Where("users.is_deleted = ? AND users.acc_status = ? AND users.role = ?", false, true, "USER").
		Where("courses.is_deleted = ? AND courses.status = ?", false, true)

	courseID, hasCourseFilter := c.Locals("filterCourseID").(uint)
	if hasCourseFilter {
		var course models.Course
		if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, true).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
		}
		query = query.Where("user_course_progresses.course_id = ?", courseID)
	}

	userID, hasUserFilter := c.Locals("filterUserID").(uint)
	if hasUserFilter {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ? AND acc_status = ? AND role = ?", userID, false, true, "USER").First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found or not active!", nil)
		}
		query = query.Where("user_course_progresses.user_id = ?", userID)
	}

	var rows []models.UserCourseProgress
	if err := query.Preload("User").Preload("Course").Select("user_course_progresses.*").Find(&rows).Error; err != nil {
		log.Printf("Error getting user course progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress data!", nil)
	}

	items := make([]progressReportItem, len(rows))
	for i, row := range rows {
		totalItems := row.CompletedSections + row.PendingSections + row.CompletedModules + row.PendingModules
		completedItems := row.CompletedSections + row.CompletedModules

		percentage := float64(0)
		if totalItems > 0 {
			percentage = float64(completedItems) / float64(totalItems) * 100
		}

		status := "Started"
		switch {
		case percentage == 100:
			status = "Completed"
		case percentage >= 60:
			status = "Close"
		case percentage >= 40:
			status = "Progressing"
		}

		items[i] = progressReportItem{
			ID:                   row.ID,
			UserID:               row.UserID,
			CourseID:             row.CourseID,
			FirstName:            row.User.FirstName,
			LastName:             row.User.LastName,
			Email:                row.User.Email,
			CourseTitle:          row.Course.Title,
			CompletedSections:    row.CompletedSections,
			PendingSections:      row.PendingSections,
			CompletedModules:     row.CompletedModules,
			PendingModules:       row.PendingModules,
			Awarded:              row.Awarded,
			CompletionPercentage: roundTo2(percentage),
			CompletionStatus:     status,
			StartedDate:          utils.FormatDate(row.CreatedAt),
		}
	}

	progressMessage := ""
	if len(items) == 0 {
		switch {
		case !hasUserFilter && !hasCourseFilter:
			progressMessage = "No users enrolled in any courses."
		case !hasUserFilter && hasCourseFilter:
			progressMessage = "No users enrolled in this course."
		case hasUserFilter && !hasCourseFilter:
			progressMessage = "This user is not enrolled in any courses."
		default:
			progressMessage = "This user is not enrolled in this course."
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User course progress retrieved successfully!", fiber.Map{
		"progress":        items,
		"progressMessage": progressMessage,
	})
}

// GetMyCourseProgress returns the caller's progress row for one course.
func GetMyCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var row models.UserCourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&row).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress retrieved successfully!", row)
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
