package service

import (
	"context"
	"fmt"
	"strings"

	"menuboard/internal/models"
	"menuboard/internal/observability"
	"menuboard/internal/qr"
	"menuboard/internal/repository"
)

// MaxTables bounds a single recreate call.
const MaxTables = 200

type TableService struct {
	tableRepo    repository.TableRepository
	profileRepo  repository.ProfileRepository
	codes        qr.Generator
	defaultCount int
}

func NewTableService(
	tableRepo repository.TableRepository,
	profileRepo repository.ProfileRepository,
	codes qr.Generator,
	defaultCount int,
) *TableService {
	if defaultCount <= 0 || defaultCount > MaxTables {
		defaultCount = 10
	}
	return &TableService{
		tableRepo:    tableRepo,
		profileRepo:  profileRepo,
		codes:        codes,
		defaultCount: defaultCount,
	}
}

// DefaultCount is the number of tables created when the request omits count.
func (s *TableService) DefaultCount() int { return s.defaultCount }

// Recreate replaces every table of the restaurant with tables 1..count.
func (s *TableService) Recreate(ctx context.Context, restaurantID string, count *int) ([]models.Table, error) {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return nil, models.NewValidationError("restaurantID is required")
	}
	n := s.defaultCount
	if count != nil {
		n = *count
	}
	if n < 1 || n > MaxTables {
		return nil, models.NewValidationError(fmt.Sprintf("count must be between 1 and %d", MaxTables))
	}

	if _, err := s.profileRepo.GetByRestaurantID(ctx, restaurantID); err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewNotFoundMessage("Restaurant not found")
		}
		return nil, err
	}

	tables := models.NumberedTables(restaurantID, n)
	err := observability.Traced(ctx, "tables.recreate", restaurantID, func(ctx context.Context) error {
		return s.tableRepo.ReplaceAll(ctx, restaurantID, tables)
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *TableService) ListTables(ctx context.Context, restaurantID string) ([]models.Table, error) {
	return s.tableRepo.List(ctx, restaurantID)
}

func (s *TableService) GetTable(ctx context.Context, restaurantID, table string) (*models.Table, error) {
	return s.tableRepo.GetByUsername(ctx, restaurantID, table)
}

// TableQRCode renders the landing link of an existing table as a PNG.
func (s *TableService) TableQRCode(ctx context.Context, restaurantID, table string) ([]byte, error) {
	t, err := s.tableRepo.GetByUsername(ctx, restaurantID, table)
	if err != nil {
		return nil, err
	}
	png, err := s.codes.TablePNG(restaurantID, t.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return png, nil
}
