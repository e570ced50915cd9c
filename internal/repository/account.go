package repository

import (
	"context"
	"errors"
	"log/slog"

	"menuboard/internal/models"
	"menuboard/internal/observability"

	"gorm.io/gorm"
)

// ErrAccountExists is returned when registration hits an existing username or email.
var ErrAccountExists = models.NewConflictError("Account with this username or email already exists")

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Register(ctx context.Context, account *models.Account, profile *models.Profile) error
}

type accountRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewAccountRepository returns a new AccountRepository implementation.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db, log: observability.NewRepoLogger("accounts")}
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Account", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

// findOne returns nil, nil when nothing matches.
func (r *accountRepository) findOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where(query, arg).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Register creates the account and its profile and links them in one transaction.
func (r *accountRepository) Register(ctx context.Context, account *models.Account, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		account.ProfileID = &profile.ID
		return tx.Model(account).Update("profile_id", profile.ID).Error
	})
	if err != nil {
		account.ProfileID = nil
		if isUniqueConstraintError(err) {
			return ErrAccountExists
		}
		r.log.LogError(ctx, err, "register")
		return models.NewInternalError(err)
	}

	r.log.LogCreate(ctx,
		slog.String("account_id", account.ID),
		slog.String("restaurant_id", profile.RestaurantID),
	)
	return nil
}
