package scoreboard

import (
	"errors"

	"gorm.io/gorm"

	"lms/models"
)

// Entry is one scoreboard row joined with its user, shaped for the leaderboard
// endpoint.
type Entry struct {
	UserID    uint   `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Image     string `json:"image"`
	Score     int    `json:"score"`
}

// GetOrCreate fetches the user's scoreboard row, creating it with a zero score when
// the user has never been awarded before.
func GetOrCreate(db *gorm.DB, userID uint) (*models.Scoreboard, error) {
	var row models.Scoreboard
	err := db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.Scoreboard{UserID: userID}
		if err := db.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AddScore grants points to the user, creating the scoreboard row on first award.
// The increment runs as an UPDATE expression so concurrent awards cannot lose points.
func AddScore(db *gorm.DB, userID uint, points int) error {
	row, err := GetOrCreate(db, userID)
	if err != nil {
		return err
	}

	return db.Model(&models.Scoreboard{}).
		Where("id = ?", row.ID).
		UpdateColumn("score", gorm.Expr("score + ?", points)).Error
}

// List returns the leaderboard ordered by score descending, ties broken by the
// user's first name ascending.
func List(db *gorm.DB) ([]Entry, error) {
	var entries []Entry
	err := db.Model(&models.Scoreboard{}).
		Select("scoreboards.user_id, users.first_name, users.last_name, users.email, users.image, scoreboards.score").
		Joins("JOIN users ON users.id = scoreboards.user_id").
		Where("users.is_deleted = ?", false).
		Order("scoreboards.score DESC").
		Order("users.first_name ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
