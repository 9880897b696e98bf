package authController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	authValidator "lms/validators/auth"
)

const (
	inviteTokenValidity = 7 * 24 * time.Hour
	resetTokenValidity  = time.Hour
)

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your email or password is invalid", nil)
	}

	if !user.AccStatus {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your account has been deactivated!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		db.Model(&user).UpdateColumn("failed_login_attempts", gorm.Expr("failed_login_attempts + 1"))
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your email or password is invalid", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process login!", nil)
	}

	now := time.Now()
	db.Model(&user).Updates(map[string]interface{}{
		"last_login":            now,
		"failed_login_attempts": 0,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token":      token,
		"token_type": "bearer",
		"expires_in": int((24 * time.Hour).Seconds()),
		"user":       user,
	})
}

// RefreshToken issues a fresh JWT for the authenticated caller.
func RefreshToken(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND acc_status = ?", userID, false, true).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	if err != nil {
		log.Printf("Error refreshing JWT for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed successfully!", fiber.Map{
		"token":      token,
		"token_type": "bearer",
		"expires_in": int((24 * time.Hour).Seconds()),
	})
}

func UserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}

func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidator.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ? AND acc_status = ?", reqData.Email, false, true).First(&user).Error; err != nil {
		// Do not reveal whether the address exists.
		return middleware.JsonResponse(c, fiber.StatusOK, true, "If the email exists, a reset link has been sent.", nil)
	}

	token := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     utils.GenerateToken(),
		ExpiresAt: time.Now().Add(resetTokenValidity),
	}
	if err := db.Create(&token).Error; err != nil {
		log.Printf("Error creating password reset token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	go func() {
		if err := utils.SendPasswordResetEmail(user.FirstName, user.Email, token.Token); err != nil {
			log.Printf("Error sending password reset email to %s: %v", user.Email, err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If the email exists, a reset link has been sent.", nil)
}

func VerifyPasswordResetToken(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedToken").(*authValidator.TokenRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var token models.PasswordResetToken
	err := database.Database.Db.Where("token = ? AND used = ? AND expires_at > ?", reqData.Token, false, time.Now()).First(&token).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token is valid.", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var token models.PasswordResetToken
	if err := db.Where("token = ? AND used = ? AND expires_at > ?", reqData.Token, false, time.Now()).First(&token).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired token!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", token.UserID).Update("password", string(hashedPassword)).Error; err != nil {
			return err
		}
		return tx.Model(&token).Update("used", true).Error
	})
	if err != nil {
		log.Printf("Error resetting password for user %d: %v", token.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}

// SendRegistrationInvite creates an invite token and emails it. Admin only.
func SendRegistrationInvite(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedInvite").(*authValidator.SendInviteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	invite := models.RegistrationInvite{
		Email:     reqData.Email,
		Role:      reqData.Role,
		Token:     utils.GenerateToken(),
		ExpiresAt: time.Now().Add(inviteTokenValidity),
		InvitedBy: userID,
	}
	if err := db.Create(&invite).Error; err != nil {
		log.Printf("Error creating registration invite: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create invite!", nil)
	}

	go func() {
		if err := utils.SendRegistrationInviteEmail(invite.Email, invite.Token); err != nil {
			log.Printf("Error sending registration invite to %s: %v", invite.Email, err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invitation sent successfully!", fiber.Map{
		"email":      invite.Email,
		"expires_at": invite.ExpiresAt,
	})
}

func VerifyRegistrationToken(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedToken").(*authValidator.TokenRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var invite models.RegistrationInvite
	err := database.Database.Db.Where("token = ? AND used = ? AND expires_at > ?", reqData.Token, false, time.Now()).First(&invite).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired invitation!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invitation is valid.", fiber.Map{
		"email": invite.Email,
	})
}

// Register creates an account from a valid invitation token.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var invite models.RegistrationInvite
	if err := db.Where("token = ? AND used = ? AND expires_at > ?", reqData.Token, false, time.Now()).First(&invite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired invitation!", nil)
	}

	if err := db.Where("email = ? AND is_deleted = ?", invite.Email, false).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Email:     invite.Email,
		Role:      invite.Role,
		Password:  string(hashedPassword),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		return tx.Model(&invite).Update("used", true).Error
	})
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// CompleteProfile fills in the name/bio fields after invite-based registration.
func CompleteProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCompleteProfile").(*authValidator.CompleteProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	user.FirstName = reqData.FirstName
	user.LastName = reqData.LastName
	user.Bio = reqData.Bio
	user.IsProfileCompleted = true

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error completing profile for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile completed successfully!", user)
}
