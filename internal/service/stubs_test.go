package service

import (
	"context"
	"errors"
	"testing"

	"menuboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accountRepoStub is a stub for repository.AccountRepository.
type accountRepoStub struct {
	getByIDFn       func(context.Context, string) (*models.Account, error)
	getByUsernameFn func(context.Context, string) (*models.Account, error)
	getByEmailFn    func(context.Context, string) (*models.Account, error)
	existsFn        func(context.Context, string, string) (bool, error)
	registerFn      func(context.Context, *models.Account, *models.Profile) error
}

func (s *accountRepoStub) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return s.getByIDFn(ctx, id)
}
func (s *accountRepoStub) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *accountRepoStub) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *accountRepoStub) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return s.existsFn(ctx, username, email)
}
func (s *accountRepoStub) Register(ctx context.Context, account *models.Account, profile *models.Profile) error {
	return s.registerFn(ctx, account, profile)
}

func noopAccountRepo() *accountRepoStub {
	return &accountRepoStub{
		getByIDFn:       func(_ context.Context, _ string) (*models.Account, error) { return &models.Account{}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.Account, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.Account, error) { return nil, nil },
		existsFn:        func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		registerFn:      func(_ context.Context, _ *models.Account, _ *models.Profile) error { return nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByIDFn           func(context.Context, string) (*models.Profile, error)
	getByRestaurantIDFn func(context.Context, string) (*models.Profile, error)
	replaceCategoriesFn func(context.Context, string, []string) error
	updateFn            func(context.Context, *models.Profile) error
}

func (s *profileRepoStub) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByRestaurantID(ctx context.Context, restaurantID string) (*models.Profile, error) {
	return s.getByRestaurantIDFn(ctx, restaurantID)
}
func (s *profileRepoStub) ReplaceCategories(ctx context.Context, id string, categories []string) error {
	return s.replaceCategoriesFn(ctx, id, categories)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.Profile, error) {
			return &models.Profile{Document: models.Document{ID: id}, Categories: []string{}}, nil
		},
		getByRestaurantIDFn: func(_ context.Context, rid string) (*models.Profile, error) {
			return &models.Profile{RestaurantID: rid, Name: "Casa " + rid, Categories: []string{}}, nil
		},
		replaceCategoriesFn: func(_ context.Context, _ string, _ []string) error { return nil },
		updateFn:            func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

// menuRepoStub is a stub for repository.MenuRepository.
type menuRepoStub struct {
	createFn       func(context.Context, *models.MenuItem) error
	updateFn       func(context.Context, *models.MenuItem) error
	getScopedFn    func(context.Context, string, string) (*models.MenuItem, error)
	getByIDsFn     func(context.Context, string, []string) ([]models.MenuItem, error)
	deleteScopedFn func(context.Context, string, string) error
	setHiddenFn    func(context.Context, string, string, bool) (*models.MenuItem, error)
	listFn         func(context.Context, string, bool) ([]models.MenuItem, error)
}

func (s *menuRepoStub) Create(ctx context.Context, item *models.MenuItem) error {
	return s.createFn(ctx, item)
}
func (s *menuRepoStub) Update(ctx context.Context, item *models.MenuItem) error {
	return s.updateFn(ctx, item)
}
func (s *menuRepoStub) GetScoped(ctx context.Context, id, restaurantID string) (*models.MenuItem, error) {
	return s.getScopedFn(ctx, id, restaurantID)
}
func (s *menuRepoStub) GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]models.MenuItem, error) {
	return s.getByIDsFn(ctx, restaurantID, ids)
}
func (s *menuRepoStub) DeleteScoped(ctx context.Context, id, restaurantID string) error {
	return s.deleteScopedFn(ctx, id, restaurantID)
}
func (s *menuRepoStub) SetHidden(ctx context.Context, id, restaurantID string, hidden bool) (*models.MenuItem, error) {
	return s.setHiddenFn(ctx, id, restaurantID, hidden)
}
func (s *menuRepoStub) List(ctx context.Context, restaurantID string, includeHidden bool) ([]models.MenuItem, error) {
	return s.listFn(ctx, restaurantID, includeHidden)
}

func noopMenuRepo() *menuRepoStub {
	return &menuRepoStub{
		createFn: func(_ context.Context, _ *models.MenuItem) error { return nil },
		updateFn: func(_ context.Context, _ *models.MenuItem) error { return nil },
		getScopedFn: func(_ context.Context, id, rid string) (*models.MenuItem, error) {
			return &models.MenuItem{Document: models.Document{ID: id}, RestaurantID: rid, Name: "Pizza", Category: "mains", Price: 12}, nil
		},
		getByIDsFn:     func(_ context.Context, _ string, _ []string) ([]models.MenuItem, error) { return nil, nil },
		deleteScopedFn: func(_ context.Context, _, _ string) error { return nil },
		setHiddenFn: func(_ context.Context, id, _ string, hidden bool) (*models.MenuItem, error) {
			return &models.MenuItem{Document: models.Document{ID: id}, Hidden: hidden}, nil
		},
		listFn: func(_ context.Context, _ string, _ bool) ([]models.MenuItem, error) { return nil, nil },
	}
}

// tableRepoStub is a stub for repository.TableRepository.
type tableRepoStub struct {
	replaceAllFn    func(context.Context, string, []models.Table) error
	listFn          func(context.Context, string) ([]models.Table, error)
	getByUsernameFn func(context.Context, string, string) (*models.Table, error)
}

func (s *tableRepoStub) ReplaceAll(ctx context.Context, restaurantID string, tables []models.Table) error {
	return s.replaceAllFn(ctx, restaurantID, tables)
}
func (s *tableRepoStub) List(ctx context.Context, restaurantID string) ([]models.Table, error) {
	return s.listFn(ctx, restaurantID)
}
func (s *tableRepoStub) GetByUsername(ctx context.Context, restaurantID, username string) (*models.Table, error) {
	return s.getByUsernameFn(ctx, restaurantID, username)
}

func noopTableRepo() *tableRepoStub {
	return &tableRepoStub{
		replaceAllFn: func(_ context.Context, _ string, _ []models.Table) error { return nil },
		listFn:       func(_ context.Context, _ string) ([]models.Table, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, rid, u string) (*models.Table, error) {
			return &models.Table{RestaurantID: rid, Username: u, Name: "Table " + u}, nil
		},
	}
}

// orderRepoStub is a stub for repository.OrderRepository.
type orderRepoStub struct {
	createFn func(context.Context, *models.Order) error
	listFn   func(context.Context, string) ([]models.Order, error)
}

func (s *orderRepoStub) Create(ctx context.Context, order *models.Order) error {
	return s.createFn(ctx, order)
}
func (s *orderRepoStub) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return s.listFn(ctx, restaurantID)
}

func noopOrderRepo() *orderRepoStub {
	return &orderRepoStub{
		createFn: func(_ context.Context, o *models.Order) error {
			o.ID = "order-1"
			return nil
		},
		listFn: func(_ context.Context, _ string) ([]models.Order, error) { return nil, nil },
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}
