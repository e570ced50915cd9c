package repository

import (
	"context"
	"errors"
	"log/slog"

	"menuboard/internal/models"
	"menuboard/internal/observability"

	"gorm.io/gorm"
)

// ErrProfileNotFound is the NOT_FOUND reported for any missing profile hop.
var ErrProfileNotFound = models.NewNotFoundMessage("Profile not found")

// ProfileRepository defines persistence operations for restaurant profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByRestaurantID(ctx context.Context, restaurantID string) (*models.Profile, error)
	ReplaceCategories(ctx context.Context, id string, categories []string) error
	Update(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db, log: observability.NewRepoLogger("profiles")}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *profileRepository) GetByRestaurantID(ctx context.Context, restaurantID string) (*models.Profile, error) {
	return r.findOne(ctx, "restaurant_id = ?", restaurantID)
}

func (r *profileRepository) findOne(ctx context.Context, query string, arg any) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where(query, arg).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, models.NewInternalError(err)
	}
	if profile.Categories == nil {
		profile.Categories = []string{}
	}
	return &profile, nil
}

// ReplaceCategories overwrites the whole category list.
func (r *profileRepository) ReplaceCategories(ctx context.Context, id string, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Select("categories").
		Updates(&models.Profile{Categories: categories})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "replace_categories")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	r.log.LogUpdate(ctx, slog.String("profile_id", id), slog.Int("categories", len(categories)))
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, slog.String("profile_id", profile.ID))
	return nil
}
