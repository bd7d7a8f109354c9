package services

import (
	"testing"

	"github.com/cmarkstaller/fit-buddy/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema, so the
// upsert and uniqueness semantics under test are the real constraint
// behavior, not mocks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.WeightEntry{},
		&models.Friend{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, name, code string) *models.User {
	t.Helper()
	user := &models.User{
		Email:       email,
		Password:    "x",
		DisplayName: name,
		Onboarded:   code != "",
	}
	if code != "" {
		user.FriendCode = &code
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
