package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
)

type materialItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	MaterialURL string `json:"material_url"`
	SortOrder   int    `json:"sort_order"`
	CreatedBy   string `json:"created_by"`
	UpdatedBy   string `json:"updated_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// GetMaterialsBySectionId lists a section's materials with their section, module,
// and course context.
func GetMaterialsBySectionId(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(uint)

	db := database.Database.Db

	var section models.CourseSection
	if err := db.Preload("Module").Preload("Module.Course").Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	var materials []models.CourseMaterial
	if err := db.Where("course_section_id = ? AND is_deleted = ?", sectionID, false).
		Order("sort_order asc, created_at asc").Find(&materials).Error; err != nil {
		log.Printf("Error listing materials for section %d: %v", sectionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	items := make([]materialItem, len(materials))
	for i, material := range materials {
		items[i] = materialItem{
			ID:          material.ID,
			Title:       material.Title,
			Type:        material.Type,
			Content:     material.Content,
			MaterialURL: material.MaterialURL,
			SortOrder:   material.SortOrder,
			CreatedBy:   userName(db, material.CreatedBy),
			UpdatedBy:   userName(db, material.UpdatedBy),
			CreatedAt:   utils.FormatDateTime(material.CreatedAt),
			UpdatedAt:   utils.FormatDateTime(material.UpdatedAt),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials retrieved successfully!", fiber.Map{
		"section": fiber.Map{
			"id":          section.ID,
			"title":       section.Title,
			"description": section.Description,
		},
		"module": fiber.Map{
			"id":          section.Module.ID,
			"title":       section.Module.Title,
			"description": section.Module.Description,
			"duration":    section.Module.Duration,
		},
		"course": fiber.Map{
			"id":    section.Module.Course.ID,
			"title": section.Module.Course.Title,
		},
		"materials": items,
	})
}

// CreateMaterial adds a material to a section, bumping file and duration
// bookkeeping on the section, module, and course. An attached file (FILE/VIDEO
// types) is taken from the optional multipart "file" field.
func CreateMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedMaterial").(*courseValidator.CreateMaterialRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section models.CourseSection
	if err := db.Preload("Module").Where("id = ? AND is_deleted = ?", reqData.CourseSectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	materialURL := ""
	if file, err := c.FormFile("file"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir+"/materials")
		if err != nil {
			log.Printf("Error saving material file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save material file!", nil)
		}
		materialURL = path
	}

	material := models.CourseMaterial{
		CourseSectionID: reqData.CourseSectionID,
		Title:           reqData.Title,
		Type:            reqData.Type,
		Content:         reqData.Content,
		MaterialURL:     materialURL,
		SortOrder:       reqData.SortOrder,
		Duration:        reqData.Duration,
		CreatedBy:       userID,
		UpdatedBy:       userID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&material).Error; err != nil {
			return err
		}

		fileDelta := 0
		if materialURL != "" {
			fileDelta = 1
		}

		if err := tx.Model(&models.CourseSection{}).Where("id = ?", section.ID).Updates(map[string]interface{}{
			"nr_of_files": gorm.Expr("nr_of_files + ?", fileDelta),
			"duration":    gorm.Expr("duration + ?", material.Duration),
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.CourseModule{}).Where("id = ?", section.ModuleID).Updates(map[string]interface{}{
			"nr_of_files": gorm.Expr("nr_of_files + ?", fileDelta),
			"duration":    gorm.Expr("duration + ?", material.Duration),
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Course{}).Where("id = ?", section.Module.CourseID).Updates(map[string]interface{}{
			"nr_of_files": gorm.Expr("nr_of_files + ?", fileDelta),
			"duration":    gorm.Expr("duration + ?", material.Duration),
		}).Error
	})
	if err != nil {
		log.Printf("Error creating material: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully!", material)
}

func UpdateMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(uint)

	reqData, ok := c.Locals("validatedMaterialUpdate").(*courseValidator.UpdateMaterialRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var material models.CourseMaterial
	if err := db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	material.Title = reqData.Title
	material.Content = reqData.Content
	material.SortOrder = reqData.SortOrder
	material.UpdatedBy = userID

	if err := db.Save(&material).Error; err != nil {
		log.Printf("Error updating material %d: %v", materialID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material updated successfully!", material)
}

// DeleteMaterial soft deletes a material and rolls its bookkeeping out of the
// section, module, and course.
func DeleteMaterial(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(uint)

	db := database.Database.Db

	var material models.CourseMaterial
	if err := db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	var section models.CourseSection
	if err := db.Preload("Module").Where("id = ?", material.CourseSectionID).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	fileDelta := 0
	if material.MaterialURL != "" {
		fileDelta = 1
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&material).Update("is_deleted", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.CourseSection{}).Where("id = ?", section.ID).Updates(map[string]interface{}{
			"nr_of_files": maxInt(0, section.NrOfFiles-fileDelta),
			"duration":    maxInt(0, section.Duration-material.Duration),
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.CourseModule{}).Where("id = ?", section.ModuleID).Updates(map[string]interface{}{
			"nr_of_files": maxInt(0, section.Module.NrOfFiles-fileDelta),
			"duration":    maxInt(0, section.Module.Duration-material.Duration),
		}).Error; err != nil {
			return err
		}

		var course models.Course
		if err := tx.Where("id = ?", section.Module.CourseID).First(&course).Error; err != nil {
			return err
		}

		return tx.Model(&course).Updates(map[string]interface{}{
			"nr_of_files": maxInt(0, course.NrOfFiles-fileDelta),
			"duration":    maxInt(0, course.Duration-material.Duration),
		}).Error
	})
	if err != nil {
		log.Printf("Error deleting material %d: %v", materialID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	if err := utils.DeleteStoredFile(material.MaterialURL); err != nil {
		log.Printf("Error removing material file %s: %v", material.MaterialURL, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully!", nil)
}

func userName(db *gorm.DB, id uint) string {
	if id == 0 {
		return ""
	}
	var user models.User
	if err := db.Select("first_name", "last_name").Where("id = ?", id).First(&user).Error; err != nil {
		return ""
	}
	return utils.FullName(user.FirstName, user.LastName)
}
