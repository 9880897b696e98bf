package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/refresh", middleware.JWTMiddleware, authControllers.RefreshToken)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.UserProfile)

	authGroup.Post("/forgot-password", authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Post("/verify-reset-token", authValidators.VerifyToken(), authControllers.VerifyPasswordResetToken)
	authGroup.Post("/reset-password", authValidators.ResetPassword(), authControllers.ResetPassword)

	authGroup.Post("/invite", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), authValidators.SendInvite(), authControllers.SendRegistrationInvite)
	authGroup.Post("/verify-invite", authValidators.VerifyToken(), authControllers.VerifyRegistrationToken)
	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/complete-profile", middleware.JWTMiddleware, authValidators.CompleteProfile(), authControllers.CompleteProfile)
}
