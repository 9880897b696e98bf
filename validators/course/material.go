package courseValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type CreateMaterialRequest struct {
	CourseSectionID uint   `json:"course_section_id" validate:"required"`
	Title           string `json:"title" validate:"required,min=3,max=255"`
	Type            string `json:"type" validate:"omitempty,oneof=TEXT VIDEO FILE"`
	Content         string `json:"content"`
	SortOrder       int    `json:"sort_order" validate:"min=0"`
	Duration        int    `json:"duration" validate:"min=0"`
}

type UpdateMaterialRequest struct {
	Title     string `json:"title" validate:"required,min=3,max=255"`
	Content   string `json:"content"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

func MaterialIDParam() fiber.Handler { return idParam("materialId", "materialID") }

func CreateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateMaterialRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Type == "" {
			reqData.Type = "TEXT"
		}

		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}

func UpdateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateMaterialRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterialUpdate", reqData)
		return c.Next()
	}
}
