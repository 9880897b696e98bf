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

type sectionListItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Materials   int    `json:"materials"`
}

// GetAllSections lists sections with pagination, search, and an optional module
// filter; each item carries its material count.
func GetAllSections(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSectionList").(*courseValidator.ListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db.Model(&models.CourseSection{}).Where("is_deleted = ?", false)

	if moduleID, ok := c.Locals("filterModuleID").(uint); ok {
		db = db.Where("module_id = ?", moduleID)
	}

	if reqData.SearchTerm != "" {
		like := "%" + reqData.SearchTerm + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	db.Count(&total)

	var sections []models.CourseSection
	offset := (reqData.Page - 1) * reqData.PerPage
	if err := db.Offset(offset).Limit(reqData.PerPage).Order("created_at desc").Find(&sections).Error; err != nil {
		log.Printf("Error listing sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	// The list is rendered inside one course's admin view; expose the owning
	// course id alongside the page.
	var courseID uint
	if len(sections) > 0 {
		var module models.CourseModule
		if err := database.Database.Db.Where("id = ?", sections[0].ModuleID).First(&module).Error; err == nil {
			courseID = module.CourseID
		}
	}

	items := make([]sectionListItem, len(sections))
	for i, section := range sections {
		var materialCount int64
		database.Database.Db.Model(&models.CourseMaterial{}).Where("course_section_id = ? AND is_deleted = ?", section.ID, false).Count(&materialCount)

		items[i] = sectionListItem{
			ID:          section.ID,
			Title:       section.Title,
			Description: section.Description,
			Materials:   int(materialCount),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections retrieved successfully!", fiber.Map{
		"sections":  items,
		"course_id": courseID,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.PerPage,
		},
	})
}

func CreateSection(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSection").(*courseValidator.CreateSectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module models.CourseModule
	if err := db.Where("id = ? AND is_deleted = ?", reqData.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	section := models.CourseSection{
		ModuleID:    reqData.ModuleID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	if err := db.Create(&section).Error; err != nil {
		log.Printf("Error creating section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", fiber.Map{
		"id":          section.ID,
		"title":       section.Title,
		"description": section.Description,
		"materials":   0,
	})
}

func GetSectionById(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(uint)

	var section models.CourseSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section retrieved successfully!", fiber.Map{
		"id":          section.ID,
		"title":       section.Title,
		"description": section.Description,
		"module_id":   section.ModuleID,
	})
}

func UpdateSection(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(uint)

	reqData, ok := c.Locals("validatedSectionUpdate").(*courseValidator.UpdateSectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section models.CourseSection
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	section.Title = reqData.Title
	section.Description = reqData.Description

	if err := db.Save(&section).Error; err != nil {
		log.Printf("Error updating section %d: %v", sectionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	var materialCount int64
	db.Model(&models.CourseMaterial{}).Where("course_section_id = ? AND is_deleted = ?", section.ID, false).Count(&materialCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", fiber.Map{
		"id":          section.ID,
		"title":       section.Title,
		"description": section.Description,
		"materials":   materialCount,
	})
}

// DeleteSection soft deletes a section and rolls its duration and file counts out
// of the owning module and course in one transaction.
func DeleteSection(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(uint)

	db := database.Database.Db

	var section models.CourseSection
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CourseMaterial{}).Where("course_section_id = ?", section.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&section).Update("is_deleted", true).Error; err != nil {
			return err
		}

		var module models.CourseModule
		if err := tx.Where("id = ? AND is_deleted = ?", section.ModuleID, false).First(&module).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		if err := tx.Model(&module).Updates(map[string]interface{}{
			"duration":    maxInt(0, module.Duration-section.Duration),
			"nr_of_files": maxInt(0, module.NrOfFiles-section.NrOfFiles),
		}).Error; err != nil {
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
			"duration":    maxInt(0, course.Duration-section.Duration),
			"nr_of_files": maxInt(0, course.NrOfFiles-section.NrOfFiles),
		}).Error
	})
	if err != nil {
		log.Printf("Error deleting section %d: %v", sectionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}
