package service

import (
	"context"
	"errors"
	"testing"

	"menuboard/internal/models"
	"menuboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type qrStub struct {
	pngFn func(restaurantID, table string) ([]byte, error)
}

func (s qrStub) TableURL(restaurantID, table string) string {
	return "https://menu.test/" + restaurantID + "?table=" + table
}

func (s qrStub) TablePNG(restaurantID, table string) ([]byte, error) {
	return s.pngFn(restaurantID, table)
}

func TestTableService_Recreate(t *testing.T) {
	tables := noopTableRepo()
	var replaced []models.Table
	tables.replaceAllFn = func(_ context.Context, rid string, ts []models.Table) error {
		assert.Equal(t, "casa-pepe", rid)
		replaced = ts
		return nil
	}
	svc := NewTableService(tables, noopProfileRepo(), nil, 4)

	got, err := svc.Recreate(context.Background(), "casa-pepe", nil)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, replaced, got)
	assert.Equal(t, "1", got[0].Username)
	assert.Equal(t, "Table 4", got[3].Name)

	got, err = svc.Recreate(context.Background(), "casa-pepe", intPtr(12))
	require.NoError(t, err)
	assert.Len(t, got, 12)
}

func TestTableService_Recreate_Validation(t *testing.T) {
	svc := NewTableService(noopTableRepo(), noopProfileRepo(), nil, 10)
	ctx := context.Background()

	_, err := svc.Recreate(ctx, " ", nil)
	appErr := assertAppError(t, err, models.CodeValidation)
	assert.Equal(t, "restaurantID is required", appErr.Message)

	for _, n := range []int{0, -1, MaxTables + 1} {
		_, err = svc.Recreate(ctx, "casa-pepe", intPtr(n))
		assertValidationError(t, err)
	}
}

func TestTableService_Recreate_UnknownRestaurant(t *testing.T) {
	profiles := noopProfileRepo()
	profiles.getByRestaurantIDFn = func(_ context.Context, _ string) (*models.Profile, error) {
		return nil, repository.ErrProfileNotFound
	}
	tables := noopTableRepo()
	tables.replaceAllFn = func(_ context.Context, _ string, _ []models.Table) error {
		t.Fatal("tables must not be replaced for an unknown restaurant")
		return nil
	}
	svc := NewTableService(tables, profiles, nil, 10)

	_, err := svc.Recreate(context.Background(), "ghost", nil)
	appErr := assertAppError(t, err, models.CodeNotFound)
	assert.Equal(t, "Restaurant not found", appErr.Message)
}

func TestTableService_DefaultCountClamped(t *testing.T) {
	assert.Equal(t, 10, NewTableService(noopTableRepo(), noopProfileRepo(), nil, 0).DefaultCount())
	assert.Equal(t, 10, NewTableService(noopTableRepo(), noopProfileRepo(), nil, 500).DefaultCount())
	assert.Equal(t, 25, NewTableService(noopTableRepo(), noopProfileRepo(), nil, 25).DefaultCount())
}

func TestTableService_TableQRCode(t *testing.T) {
	codes := qrStub{pngFn: func(rid, table string) ([]byte, error) {
		return []byte(rid + "/" + table), nil
	}}
	svc := NewTableService(noopTableRepo(), noopProfileRepo(), codes, 10)

	png, err := svc.TableQRCode(context.Background(), "casa-pepe", "3")
	require.NoError(t, err)
	assert.Equal(t, []byte("casa-pepe/3"), png)

	failing := qrStub{pngFn: func(_, _ string) ([]byte, error) { return nil, errors.New("too long") }}
	svc = NewTableService(noopTableRepo(), noopProfileRepo(), failing, 10)
	_, err = svc.TableQRCode(context.Background(), "casa-pepe", "3")
	assertAppError(t, err, models.CodeInternal)
}
