package repository

import (
	"context"
	"errors"
	"log/slog"

	"menuboard/internal/models"
	"menuboard/internal/observability"

	"gorm.io/gorm"
)

// ErrMenuItemNotFound covers both a missing item and one owned by another restaurant.
var ErrMenuItemNotFound = models.NewNotFoundMessage("Menu item not found")

// MenuRepository defines persistence operations for menu items.
type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	GetScoped(ctx context.Context, id, restaurantID string) (*models.MenuItem, error)
	GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]models.MenuItem, error)
	DeleteScoped(ctx context.Context, id, restaurantID string) error
	SetHidden(ctx context.Context, id, restaurantID string, hidden bool) (*models.MenuItem, error)
	List(ctx context.Context, restaurantID string, includeHidden bool) ([]models.MenuItem, error)
}

type menuRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewMenuRepository returns a new MenuRepository implementation.
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db, log: observability.NewRepoLogger("menu_items")}
}

// Create inserts the item and registers its category on the profile in the same transaction.
func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := registerCategory(tx, item.RestaurantID, item.Category); err != nil {
			return err
		}
		return tx.Create(item).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx,
		slog.String("menu_item_id", item.ID),
		slog.String("restaurant_id", item.RestaurantID),
	)
	return nil
}

// Update saves every column of item and registers a new category if needed.
func (r *menuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := registerCategory(tx, item.RestaurantID, item.Category); err != nil {
			return err
		}
		return tx.Save(item).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, slog.String("menu_item_id", item.ID))
	return nil
}

// registerCategory appends category to the restaurant's profile list when it is
// missing. Restaurants without a profile are left alone.
func registerCategory(tx *gorm.DB, restaurantID, category string) error {
	if category == "" {
		return nil
	}
	var profile models.Profile
	if err := tx.Where("restaurant_id = ?", restaurantID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if profile.HasCategory(category) {
		return nil
	}
	categories := append(append([]string{}, profile.Categories...), category)
	return tx.Model(&profile).Select("categories").Updates(&models.Profile{Categories: categories}).Error
}

func (r *menuRepository) GetScoped(ctx context.Context, id, restaurantID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, models.NewInternalError(err)
	}
	normalizeImages(&item)
	return &item, nil
}

func (r *menuRepository) GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id IN ?", restaurantID, ids).
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range items {
		normalizeImages(&items[i])
	}
	return items, nil
}

// DeleteScoped removes the item only when it belongs to restaurantID.
func (r *menuRepository) DeleteScoped(ctx context.Context, id, restaurantID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Delete(&models.MenuItem{})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	r.log.LogDelete(ctx, slog.String("menu_item_id", id))
	return nil
}

func (r *menuRepository) SetHidden(ctx context.Context, id, restaurantID string, hidden bool) (*models.MenuItem, error) {
	item, err := r.GetScoped(ctx, id, restaurantID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(item).Update("hidden", hidden).Error; err != nil {
		r.log.LogError(ctx, err, "set_hidden")
		return nil, models.NewInternalError(err)
	}
	item.Hidden = hidden
	r.log.LogUpdate(ctx, slog.String("menu_item_id", id), slog.Bool("hidden", hidden))
	return item, nil
}

// List returns a restaurant's items in creation order.
func (r *menuRepository) List(ctx context.Context, restaurantID string, includeHidden bool) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	q := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if !includeHidden {
		q = q.Where("hidden = ?", false)
	}
	if err := q.Order("created_at ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range items {
		normalizeImages(&items[i])
	}
	return items, nil
}

func normalizeImages(item *models.MenuItem) {
	if item.Image == nil {
		item.Image = []string{}
	}
}
