package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

const (
	defaultPerPage = 15
	minPerPage     = 5
	maxPerPage     = 100
)

type ListRequest struct {
	Page       int    `query:"page"`
	PerPage    int    `query:"per_page"`
	SearchTerm string `query:"searchTerm" validate:"max=255"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,min=5"`
}

type UpdateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,min=5"`
}

type ChangeStatusRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
	Status   bool `json:"status"`
}

// idParam validates a positive integer route parameter and stashes it in Locals
// under the given key.
func idParam(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID parameter is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID parameter!", nil)
		}

		c.Locals(key, uint(id))
		return c.Next()
	}
}

func CourseIDParam() fiber.Handler  { return idParam("courseId", "courseID") }
func ModuleIDParam() fiber.Handler  { return idParam("moduleId", "moduleID") }
func SectionIDParam() fiber.Handler { return idParam("sectionId", "sectionID") }

// List validates pagination and search query parameters, applying pagination
// defaults and bounds.
func List(localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.PerPage == 0 {
			reqData.PerPage = defaultPerPage
		}
		if reqData.PerPage < minPerPage || reqData.PerPage > maxPerPage {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"per_page": "Must be between " + strconv.Itoa(minPerPage) + " and " + strconv.Itoa(maxPerPage) + "!",
			})
		}

		c.Locals(localsKey, reqData)
		return c.Next()
	}
}

func CourseList() fiber.Handler { return List("validatedCourseList") }

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func ChangeCourseStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangeStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseStatus", reqData)
		return c.Next()
	}
}
