package repository

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"

	"menuboard/internal/models"
	"menuboard/internal/observability"

	"gorm.io/gorm"
)

// ErrTableNotFound is returned when a table code does not exist for a restaurant.
var ErrTableNotFound = models.NewNotFoundMessage("Table not found")

// TableRepository defines persistence operations for restaurant tables.
type TableRepository interface {
	ReplaceAll(ctx context.Context, restaurantID string, tables []models.Table) error
	List(ctx context.Context, restaurantID string) ([]models.Table, error)
	GetByUsername(ctx context.Context, restaurantID, username string) (*models.Table, error)
}

type tableRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTableRepository returns a new TableRepository implementation.
func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db, log: observability.NewRepoLogger("tables")}
}

// ReplaceAll deletes every table of the restaurant and inserts tables atomically.
func (r *tableRepository) ReplaceAll(ctx context.Context, restaurantID string, tables []models.Table) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.Table{}).Error; err != nil {
			return err
		}
		if len(tables) == 0 {
			return nil
		}
		return tx.CreateInBatches(&tables, 100).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "replace_all")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx,
		slog.String("restaurant_id", restaurantID),
		slog.Int("count", len(tables)),
	)
	return nil
}

// List returns tables ordered by their numeric code.
func (r *tableRepository) List(ctx context.Context, restaurantID string) ([]models.Table, error) {
	tables := []models.Table{}
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Find(&tables).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	sort.SliceStable(tables, func(i, j int) bool {
		a, errA := strconv.Atoi(tables[i].Username)
		b, errB := strconv.Atoi(tables[j].Username)
		if errA != nil || errB != nil {
			return tables[i].Username < tables[j].Username
		}
		return a < b
	})
	return tables, nil
}

func (r *tableRepository) GetByUsername(ctx context.Context, restaurantID, username string) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND username = ?", restaurantID, username).
		First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, models.NewInternalError(err)
	}
	return &table, nil
}
