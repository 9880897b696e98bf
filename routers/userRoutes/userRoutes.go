package userRoutes

import (
	userControllers "lms/controllers/user"
	"lms/middleware"
	userValidators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Put("/profile", userValidators.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Put("/password", userValidators.ChangePassword(), userControllers.ChangePassword)
	userGroup.Post("/profile/image", userControllers.UploadProfileImage)
	userGroup.Delete("/profile/image", userControllers.DeleteProfileImage)

	adminGroup := app.Group("/admin/user", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Get("/list", userValidators.UserList(), userControllers.AllUsers)
	adminGroup.Get("/:id", userValidators.UserIDParam(), userControllers.GetUserProfileById)
	adminGroup.Patch("/:id/role", userValidators.UserIDParam(), userValidators.ChangeRole(), userControllers.ChangeUserRole)
	adminGroup.Patch("/:id/status", userValidators.UserIDParam(), userValidators.ChangeStatus(), userControllers.ChangeAccountStatus)
}
