package courseController

import (
	"log"
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
)

type courseListItem struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Duration  int    `json:"duration"` // minutes, rounded up
	Files     int    `json:"files"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Created   string `json:"created"`
	Status    string `json:"status"`
}

// GetAllCourses lists courses with pagination and title/creator search. Admin only.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*courseValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db.Model(&models.Course{}).
		Joins("JOIN users ON users.id = courses.created_by").
		Where("courses.is_deleted = ?", false)

	if reqData.SearchTerm != "" {
		like := "%" + reqData.SearchTerm + "%"
		db = db.Where("courses.title LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ?", like, like, like)
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	offset := (reqData.Page - 1) * reqData.PerPage
	if err := db.Preload("Creator").Offset(offset).Limit(reqData.PerPage).Order("courses.created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error listing courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	items := make([]courseListItem, len(courses))
	for i, course := range courses {
		status := "Inactive"
		if course.Status {
			status = "Active"
		}
		items[i] = courseListItem{
			ID:        course.ID,
			Title:     course.Title,
			Duration:  int(math.Ceil(float64(course.Duration) / 60)),
			Files:     course.NrOfFiles,
			FirstName: course.Creator.FirstName,
			LastName:  course.Creator.LastName,
			Created:   utils.FormatDate(course.CreatedAt),
			Status:    status,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses retrieved successfully!", fiber.Map{
		"courses": items,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.PerPage,
		},
	})
}

func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		CreatedBy:   userID,
		UpdatedBy:   userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func GetCourseById(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	err := database.Database.Db.
		Preload("Modules", "is_deleted = ?", false).
		Preload("Modules.Sections", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course retrieved successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.UpdatedBy = userID

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// ChangeCourseStatus toggles a course between active and inactive.
func ChangeCourseStatus(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseStatus").(*courseValidator.ChangeStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Model(&course).Update("status", reqData.Status).Error; err != nil {
		log.Printf("Error changing status for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change course status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course status updated successfully!", fiber.Map{
		"course_id": course.ID,
		"status":    reqData.Status,
	})
}

// DeleteCourse soft deletes a course and everything under it.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&models.CourseModule{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			var sectionIDs []uint
			if err := tx.Model(&models.CourseSection{}).Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).Pluck("id", &sectionIDs).Error; err != nil {
				return err
			}

			if len(sectionIDs) > 0 {
				if err := tx.Model(&models.CourseMaterial{}).Where("course_section_id IN ?", sectionIDs).Update("is_deleted", true).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.CourseSection{}).Where("id IN ?", sectionIDs).Update("is_deleted", true).Error; err != nil {
					return err
				}
			}

			if err := tx.Model(&models.CourseModule{}).Where("id IN ?", moduleIDs).Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		return tx.Model(&course).Update("is_deleted", true).Error
	})
	if err != nil {
		log.Printf("Error deleting course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// DeleteCourseVideo removes the intro video and rolls its bookkeeping out of the
// course.
func DeleteCourseVideo(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.IntroVideoURL == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course has no intro video!", nil)
	}

	oldVideo := course.IntroVideoURL
	updates := map[string]interface{}{
		"intro_video_url": "",
		"nr_of_files":     maxInt(0, course.NrOfFiles-1),
	}

	if err := db.Model(&course).Updates(updates).Error; err != nil {
		log.Printf("Error deleting intro video for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course video!", nil)
	}

	if err := utils.DeleteStoredFile(oldVideo); err != nil {
		log.Printf("Error removing video file %s: %v", oldVideo, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course video deleted successfully!", nil)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
