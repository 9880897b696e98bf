package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

type moduleListItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Sections    int    `json:"sections"`
	Duration    int    `json:"duration"`
}

// GetModules lists modules, optionally filtered to one course, with section counts.
func GetModules(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModuleList").(*courseValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db.Model(&models.CourseModule{}).Where("is_deleted = ?", false)

	if courseID, ok := c.Locals("filterCourseID").(uint); ok {
		db = db.Where("course_id = ?", courseID)
	}

	if reqData.SearchTerm != "" {
		like := "%" + reqData.SearchTerm + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	db.Count(&total)

	var modules []models.CourseModule
	offset := (reqData.Page - 1) * reqData.PerPage
	if err := db.Offset(offset).Limit(reqData.PerPage).Order("created_at desc").Find(&modules).Error; err != nil {
		log.Printf("Error listing modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	items := make([]moduleListItem, len(modules))
	for i, module := range modules {
		var sectionCount int64
		database.Database.Db.Model(&models.CourseSection{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Count(&sectionCount)

		items[i] = moduleListItem{
			ID:          module.ID,
			Title:       module.Title,
			Description: module.Description,
			Sections:    int(sectionCount),
			Duration:    module.Duration,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules retrieved successfully!", fiber.Map{
		"modules": items,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.PerPage,
		},
	})
}

func CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*courseValidator.CreateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := models.CourseModule{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	if err := db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

func GetModuleById(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	var module models.CourseModule
	err := database.Database.Db.
		Preload("Sections", "is_deleted = ?", false).
		Where("id = ? AND is_deleted = ?", moduleID, false).
		First(&module).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module retrieved successfully!", module)
}

func UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.UpdateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module models.CourseModule
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.Title = reqData.Title
	module.Description = reqData.Description

	if err := db.Save(&module).Error; err != nil {
		log.Printf("Error updating module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft deletes a module and rolls its duration and file counts out of
// the owning course.
func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db

	var module models.CourseModule
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CourseSection{}).Where("module_id = ?", module.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&module).Update("is_deleted", true).Error; err != nil {
			return err
		}

		var course models.Course
		if err := tx.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		return tx.Model(&course).Updates(map[string]interface{}{
			"duration":    maxInt(0, course.Duration-module.Duration),
			"nr_of_files": maxInt(0, course.NrOfFiles-module.NrOfFiles),
		}).Error
	})
	if err != nil {
		log.Printf("Error deleting module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}
