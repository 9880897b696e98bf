package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/database"
	"lms/models"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[TOKEN-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredTokens hard-deletes password-reset tokens and registration invites
// that are past their expiry or already consumed.
func purgeExpiredTokens() {
	db := database.Database.Db
	now := time.Now()

	res := db.Unscoped().Where("expires_at < ? OR used = ?", now, true).Delete(&models.PasswordResetToken{})
	if res.Error != nil {
		logScheduler("Error purging password reset tokens: " + res.Error.Error())
	} else if res.RowsAffected > 0 {
		logScheduler("Purged expired password reset tokens")
	}

	res = db.Unscoped().Where("expires_at < ? OR used = ?", now, true).Delete(&models.RegistrationInvite{})
	if res.Error != nil {
		logScheduler("Error purging registration invites: " + res.Error.Error())
	} else if res.RowsAffected > 0 {
		logScheduler("Purged expired registration invites")
	}
}

// StartTokenScheduler runs the token purge once a day at 03:00.
func StartTokenScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", purgeExpiredTokens); err != nil {
		log.Fatalf("Failed to schedule token purge: %v", err)
	}

	c.Start()
	logScheduler("Token scheduler started")
	return c
}
