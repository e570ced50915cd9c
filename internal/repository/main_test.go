package repository

import (
	"testing"

	"menuboard/internal/database"
	"menuboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, restaurantID string, categories ...string) *models.Profile {
	t.Helper()
	if categories == nil {
		categories = []string{}
	}
	profile := &models.Profile{
		RestaurantID: restaurantID,
		Name:         restaurantID,
		Description:  models.DefaultProfileDescription,
		Categories:   categories,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}
