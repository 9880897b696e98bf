package progress

import (
	"errors"
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

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		FirstName: "Test",
		LastName:  "Learner",
		Email:     "learner@example.com",
		Password:  "secret",
		Role:      "USER",
		AccStatus: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createCourse builds a course with the given module/section layout. Every
// section gets one material so it can be marked done.
func createCourse(t *testing.T, db *gorm.DB, moduleCount, sectionsPerModule int) (*models.Course, [][]models.CourseSection) {
	t.Helper()

	course := models.Course{Title: "Go From Zero", Status: true}
	require.NoError(t, db.Create(&course).Error)

	sections := make([][]models.CourseSection, moduleCount)
	for m := 0; m < moduleCount; m++ {
		module := models.CourseModule{CourseID: course.ID, Title: fmt.Sprintf("Module %d", m+1)}
		require.NoError(t, db.Create(&module).Error)

		sections[m] = make([]models.CourseSection, sectionsPerModule)
		for s := 0; s < sectionsPerModule; s++ {
			section := models.CourseSection{ModuleID: module.ID, Title: fmt.Sprintf("Section %d.%d", m+1, s+1)}
			require.NoError(t, db.Create(&section).Error)

			material := models.CourseMaterial{CourseSectionID: section.ID, Title: "Reading", Type: "TEXT"}
			require.NoError(t, db.Create(&material).Error)

			sections[m][s] = section
		}
	}

	return &course, sections
}

func getEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *models.UserCourseProgress {
	t.Helper()

	var row models.UserCourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&row).Error)
	return &row
}

func getScore(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var row models.Scoreboard
	err := db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0
	}
	require.NoError(t, err)
	return row.Score
}

func TestPointsForModules(t *testing.T) {
	cases := []struct {
		modules int
		points  int
	}{
		{0, 0},
		{-1, 0},
		{1, 100},
		{2, 111},
		{3, 123},
		{4, 123},
		{5, 155},
		{6, 199},
		{12, 199},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.points, PointsForModules(tc.modules), "modules=%d", tc.modules)
	}
}

func TestEnrollSnapshotsPendingCounters(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, _ := createCourse(t, db, 3, 2)

	enrollment, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 6, enrollment.PendingSections)
	assert.Equal(t, 3, enrollment.PendingModules)
	assert.Equal(t, 0, enrollment.CompletedSections)
	assert.Equal(t, 0, enrollment.CompletedModules)
	assert.False(t, enrollment.Awarded)
}

func TestEnrollErrors(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, _ := createCourse(t, db, 1, 1)

	_, err := Enroll(db, user.ID, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = Enroll(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollInactiveCourse(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, _ := createCourse(t, db, 1, 1)
	require.NoError(t, db.Model(course).Update("status", false).Error)

	_, err := Enroll(db, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestMarkSectionDoneUpdatesCounters(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 2, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))

	enrollment := getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 1, enrollment.CompletedSections)
	assert.Equal(t, 3, enrollment.PendingSections)
	assert.Equal(t, 0, enrollment.CompletedModules)
	assert.Equal(t, 2, enrollment.PendingModules)
	assert.Equal(t, []uint{sections[0][0].ID}, []uint(enrollment.CompletedSectionIDs))

	// completed + pending never drifts from the course structure
	assert.Equal(t, 4, enrollment.CompletedSections+enrollment.PendingSections)
	assert.Equal(t, 2, enrollment.CompletedModules+enrollment.PendingModules)
}

func TestMarkSectionDoneTwice(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 1, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))
	err = MarkSectionDone(db, user.ID, sections[0][0].ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	enrollment := getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 1, enrollment.CompletedSections)
	assert.Equal(t, 1, enrollment.PendingSections)
}

func TestMarkSectionDoneEmptySection(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 1, 1)

	module := models.CourseModule{CourseID: course.ID, Title: "Extras"}
	require.NoError(t, db.Create(&module).Error)
	empty := models.CourseSection{ModuleID: module.ID, Title: "Coming soon"}
	require.NoError(t, db.Create(&empty).Error)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	before := getEnrollment(t, db, user.ID, course.ID)

	err = MarkSectionDone(db, user.ID, empty.ID)
	assert.ErrorIs(t, err, ErrEmptySection)

	after := getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, before.CompletedSections, after.CompletedSections)
	assert.Equal(t, before.PendingSections, after.PendingSections)

	// the populated section is unaffected
	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))
}

func TestMarkSectionDoneNotEnrolled(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	_, sections := createCourse(t, db, 1, 1)

	err := MarkSectionDone(db, user.ID, sections[0][0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestMarkSectionDoneUnknownSection(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)

	err := MarkSectionDone(db, user.ID, 42)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestModuleRollup(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 2, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))
	enrollment := getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 0, enrollment.CompletedModules)

	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][1].ID))
	enrollment = getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 1, enrollment.CompletedModules)
	assert.Equal(t, 1, enrollment.PendingModules)
	assert.False(t, enrollment.Awarded)
}

func TestCourseCompletionAwardsPoints(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 1, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))
	assert.Equal(t, 0, getScore(t, db, user.ID))

	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][1].ID))

	enrollment := getEnrollment(t, db, user.ID, course.ID)
	assert.True(t, enrollment.Awarded)
	assert.Equal(t, 0, enrollment.PendingSections)
	assert.Equal(t, 0, enrollment.PendingModules)
	assert.Equal(t, 100, getScore(t, db, user.ID))
}

func TestThreeModuleCourseAward(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 3, 1)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	for m := range sections {
		require.NoError(t, MarkSectionDone(db, user.ID, sections[m][0].ID))
	}

	assert.Equal(t, 123, getScore(t, db, user.ID))
}

func TestUndoKeepsAwardAndScore(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 1, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))
	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][1].ID))
	require.Equal(t, 100, getScore(t, db, user.ID))

	require.NoError(t, MarkSectionUndone(db, user.ID, sections[0][1].ID))

	enrollment := getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 1, enrollment.CompletedSections)
	assert.Equal(t, 1, enrollment.PendingSections)
	assert.Equal(t, 0, enrollment.CompletedModules)
	assert.Equal(t, 1, enrollment.PendingModules)
	assert.True(t, enrollment.Awarded, "award is a one-way latch")
	assert.Equal(t, 100, getScore(t, db, user.ID))
}

func TestReCompletionDoesNotAwardTwice(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 1, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))
	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][1].ID))

	require.NoError(t, MarkSectionUndone(db, user.ID, sections[0][1].ID))
	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][1].ID))

	enrollment := getEnrollment(t, db, user.ID, course.ID)
	assert.True(t, enrollment.Awarded)
	assert.Equal(t, 100, getScore(t, db, user.ID))
}

func TestUndoNeverDoneSection(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 1, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	before := getEnrollment(t, db, user.ID, course.ID)

	require.NoError(t, MarkSectionUndone(db, user.ID, sections[0][0].ID))

	after := getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, before.CompletedSections, after.CompletedSections)
	assert.Equal(t, before.PendingSections, after.PendingSections)
}

func TestUndoNotEnrolled(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	_, sections := createCourse(t, db, 1, 1)

	err := MarkSectionUndone(db, user.ID, sections[0][0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestModuleOrderIndependence(t *testing.T) {
	db := openTestDb(t)
	user := createUser(t, db)
	course, sections := createCourse(t, db, 2, 2)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	// interleave modules instead of finishing them in order
	require.NoError(t, MarkSectionDone(db, user.ID, sections[1][0].ID))
	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][0].ID))
	require.NoError(t, MarkSectionDone(db, user.ID, sections[1][1].ID))

	enrollment := getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 1, enrollment.CompletedModules)
	assert.False(t, enrollment.Awarded)

	require.NoError(t, MarkSectionDone(db, user.ID, sections[0][1].ID))

	enrollment = getEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 2, enrollment.CompletedModules)
	assert.True(t, enrollment.Awarded)
	assert.Equal(t, 111, getScore(t, db, user.ID))
}
