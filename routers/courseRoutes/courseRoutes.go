package courseRoutes

import (
	controllers "lms/controllers/course"
	uploadControllers "lms/controllers/upload"
	"lms/middleware"
	validators "lms/validators/course"
	uploadValidators "lms/validators/upload"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the learner-facing course endpoints.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:courseId", validators.CourseIDParam(), controllers.GetCourseById)

	// Enrollment and progress
	courseGroup.Post("/:courseId/enroll", validators.CourseIDParam(), controllers.EnrollInCourse)
	courseGroup.Get("/:courseId/progress", validators.CourseIDParam(), controllers.GetMyCourseProgress)

	sectionGroup := app.Group("/section", middleware.JWTMiddleware)
	sectionGroup.Post("/:sectionId/done", validators.SectionIDParam(), controllers.MarkSectionDone)
	sectionGroup.Delete("/:sectionId/done", validators.SectionIDParam(), controllers.MarkSectionUndone)
	sectionGroup.Get("/:sectionId/materials", validators.SectionIDParam(), controllers.GetMaterialsBySectionId)
}

// SetupAdminCourseRoutes wires the admin course management endpoints.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	adminGroup.Get("/:courseId", validators.CourseIDParam(), controllers.GetCourseById)
	adminGroup.Put("/:courseId", validators.CourseIDParam(), validators.UpdateCourse(), controllers.UpdateCourse)
	adminGroup.Patch("/:courseId/status", validators.CourseIDParam(), validators.ChangeCourseStatus(), controllers.ChangeCourseStatus)
	adminGroup.Delete("/:courseId", validators.CourseIDParam(), controllers.DeleteCourse)
	adminGroup.Delete("/:courseId/video", validators.CourseIDParam(), controllers.DeleteCourseVideo)
	adminGroup.Post("/video/chunk", uploadValidators.CourseVideoChunk(), uploadControllers.UploadCourseVideoChunk)

	// Module management
	moduleGroup := app.Group("/admin/module", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	moduleGroup.Get("/list", validators.ModuleList(), controllers.GetModules)
	moduleGroup.Post("/create", validators.CreateModule(), controllers.CreateModule)
	moduleGroup.Get("/:moduleId", validators.ModuleIDParam(), controllers.GetModuleById)
	moduleGroup.Put("/:moduleId", validators.ModuleIDParam(), validators.UpdateModule(), controllers.UpdateModule)
	moduleGroup.Delete("/:moduleId", validators.ModuleIDParam(), controllers.DeleteModule)

	// Section management
	sectionGroup := app.Group("/admin/section", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	sectionGroup.Get("/list", validators.SectionList(), controllers.GetAllSections)
	sectionGroup.Post("/create", validators.CreateSection(), controllers.CreateSection)
	sectionGroup.Get("/:sectionId", validators.SectionIDParam(), controllers.GetSectionById)
	sectionGroup.Put("/:sectionId", validators.SectionIDParam(), validators.UpdateSection(), controllers.UpdateSection)
	sectionGroup.Delete("/:sectionId", validators.SectionIDParam(), controllers.DeleteSection)

	// Material management
	materialGroup := app.Group("/admin/material", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	materialGroup.Post("/create", validators.CreateMaterial(), controllers.CreateMaterial)
	materialGroup.Put("/:materialId", validators.MaterialIDParam(), validators.UpdateMaterial(), controllers.UpdateMaterial)
	materialGroup.Delete("/:materialId", validators.MaterialIDParam(), controllers.DeleteMaterial)

	// Progress report
	adminGroup.Get("/progress/report", validators.ProgressReport(), controllers.GetUserCourseProgress)
}
