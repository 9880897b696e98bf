package courseValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// ProgressReport validates the admin progress-report filters. "all" (or absence)
// means no filter; anything else must be a positive id.
func ProgressReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		courseFilter := c.Query("course_id", "all")
		userFilter := c.Query("user_id", "all")

		if courseFilter != "all" {
			if id := c.QueryInt("course_id"); id <= 0 {
				errors["course_id"] = "Must be a positive course id or 'all'!"
			} else {
				c.Locals("filterCourseID", uint(id))
			}
		}

		if userFilter != "all" {
			if id := c.QueryInt("user_id"); id <= 0 {
				errors["user_id"] = "Must be a positive user id or 'all'!"
			} else {
				c.Locals("filterUserID", uint(id))
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
