package scoreboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/database"
	"lms/models"
)

func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func createUser(t *testing.T, db *gorm.DB, firstName string) *models.User {
	t.Helper()

	user := models.User{
		FirstName: firstName,
		LastName:  "Example",
		Email:     firstName + "@example.com",
		Password:  "secret",
		Role:      "USER",
		AccStatus: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestAddScoreCreatesRow(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db, "ada")

	require.NoError(t, AddScore(db, user.ID, 100))
	require.NoError(t, AddScore(db, user.ID, 23))

	var row models.Scoreboard
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&row).Error)
	assert.Equal(t, 123, row.Score)
}

func TestListOrdering(t *testing.T) {
	db := openTestDb(t)

	bea := createUser(t, db, "bea")
	ada := createUser(t, db, "ada")
	cleo := createUser(t, db, "cleo")

	require.NoError(t, AddScore(db, bea.ID, 100))
	require.NoError(t, AddScore(db, ada.ID, 100))
	require.NoError(t, AddScore(db, cleo.ID, 199))

	entries, err := List(db)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// highest score first, ties broken by first name
	assert.Equal(t, cleo.ID, entries[0].UserID)
	assert.Equal(t, ada.ID, entries[1].UserID)
	assert.Equal(t, bea.ID, entries[2].UserID)
}

func TestListSkipsDeletedUsers(t *testing.T) {
	db := openTestDb(t)

	ada := createUser(t, db, "ada")
	bea := createUser(t, db, "bea")
	require.NoError(t, AddScore(db, ada.ID, 100))
	require.NoError(t, AddScore(db, bea.ID, 155))

	require.NoError(t, db.Model(bea).Update("is_deleted", true).Error)

	entries, err := List(db)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ada.ID, entries[0].UserID)
}
