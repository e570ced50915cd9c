package repository

import (
	"context"
	"errors"
	"testing"

	"menuboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestAccountRepository_Register(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &models.Account{Username: "fonda", Email: "fonda@example.com", Password: "hash"}
	profile := &models.Profile{RestaurantID: "fonda", Name: "La Fonda", Categories: []string{}}

	require.NoError(t, repo.Register(ctx, account, profile))
	assert.NotEmpty(t, account.ID)
	require.NotNil(t, account.ProfileID)
	assert.Equal(t, profile.ID, *account.ProfileID)

	stored, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ProfileID)
	assert.Equal(t, profile.ID, *stored.ProfileID)

	t.Run("duplicate username is a conflict and leaves no partial rows", func(t *testing.T) {
		dup := &models.Account{Username: "fonda", Email: "other@example.com", Password: "hash"}
		dupProfile := &models.Profile{RestaurantID: "fonda-2", Name: "Other"}

		err := repo.Register(ctx, dup, dupProfile)
		assert.True(t, models.IsCode(err, models.CodeConflict))
		assert.Nil(t, dup.ProfileID)

		var count int64
		db.Model(&models.Profile{}).Where("restaurant_id = ?", "fonda-2").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("duplicate restaurant rolls back the account", func(t *testing.T) {
		acc := &models.Account{Username: "fresh", Email: "fresh@example.com", Password: "hash"}
		prof := &models.Profile{RestaurantID: "fonda", Name: "Copycat"}

		err := repo.Register(ctx, acc, prof)
		require.Error(t, err)

		found, err := repo.GetByUsername(ctx, "fresh")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestAccountRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Account{Username: "tacos", Email: "t@example.com", Password: "x"}).Error)

	byName, err := repo.GetByUsername(ctx, "tacos")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "t@example.com", byName.Email)

	byEmail, err := repo.GetByEmail(ctx, "t@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, byName.ID, byEmail.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "someone", "t@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "someone", "someone@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, "does-not-exist")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestAccountRepository_GetByID_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByID(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: accounts.username")))
	assert.True(t, isUniqueConstraintError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_accounts_email" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
}
