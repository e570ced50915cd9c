package service

import (
	"context"
	"strings"
	"time"

	"menuboard/internal/cache"
	"menuboard/internal/models"
	"menuboard/internal/observability"
	"menuboard/internal/repository"
	"menuboard/internal/storefront"
)

type MenuService struct {
	menuRepo    repository.MenuRepository
	profileRepo repository.ProfileRepository
	cacheTTL    time.Duration
}

// CreateMenuItemInput carries a new item. RestaurantID always comes from the session.
type CreateMenuItemInput struct {
	RestaurantID string
	Name         string
	Description  string
	Category     string
	Price        *float64
	TaxPercent   *float64
	FoodType     models.FoodType
	Veg          models.Veg
	Image        models.ImageList
}

// UpdateMenuItemInput carries a partial update. Nil fields are left unchanged.
type UpdateMenuItemInput struct {
	RestaurantID string
	ID           string
	Name         *string
	Description  *string
	Category     *string
	Price        *float64
	TaxPercent   *float64
	FoodType     *models.FoodType
	Veg          *models.Veg
	Image        models.ImageList
}

// PublicProfile is the part of a profile customers see.
type PublicProfile struct {
	RestaurantID string     `json:"restaurantID"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Address      string     `json:"address"`
	ThemeColor   models.HSL `json:"themeColor"`
	Avatar       string     `json:"avatar"`
	Cover        string     `json:"cover"`
	Categories   []string   `json:"categories"`
}

// PublicMenu is the customer menu of a restaurant.
type PublicMenu struct {
	Profile  PublicProfile        `json:"profile"`
	Sections []storefront.Section `json:"sections"`
}

var (
	errMenuRequired   = models.NewValidationError("Name, Price and Category are required")
	errMenuIDRequired = models.NewValidationError("Menu Item ID is required")
)

func NewMenuService(
	menuRepo repository.MenuRepository,
	profileRepo repository.ProfileRepository,
	cacheTTL time.Duration,
) *MenuService {
	if cacheTTL <= 0 {
		cacheTTL = cache.MenuTTL
	}
	return &MenuService{menuRepo: menuRepo, profileRepo: profileRepo, cacheTTL: cacheTTL}
}

func (s *MenuService) CreateMenuItem(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	if in.RestaurantID == "" {
		return nil, models.NewUnauthorizedError("Authentication Required")
	}

	name := strings.TrimSpace(in.Name)
	category := normalizeCategory(in.Category)
	if name == "" || category == "" || in.Price == nil || *in.Price == 0 {
		return nil, errMenuRequired
	}
	if err := validatePrice(*in.Price); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		RestaurantID: in.RestaurantID,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Category:     category,
		Price:        *in.Price,
		FoodType:     models.DefaultFoodType,
		Veg:          models.DefaultVeg,
		Image:        []string{},
		Hidden:       false,
	}
	if in.TaxPercent != nil {
		if err := validateTax(*in.TaxPercent); err != nil {
			return nil, err
		}
		item.TaxPercent = *in.TaxPercent
	}
	if in.FoodType != "" {
		if !in.FoodType.Valid() {
			return nil, models.NewValidationError("Invalid foodType")
		}
		item.FoodType = in.FoodType
	}
	if in.Veg != "" {
		if !in.Veg.Valid() {
			return nil, models.NewValidationError("Invalid veg")
		}
		item.Veg = in.Veg
	}
	if in.Image.Values != nil {
		item.Image = in.Image.Values
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, in.RestaurantID, "create")
	return item, nil
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, in UpdateMenuItemInput) (*models.MenuItem, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, errMenuIDRequired
	}

	item, err := s.menuRepo.GetScoped(ctx, in.ID, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	// Name, category and price are required on every item, so an empty value
	// leaves the stored one in place.
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			item.Name = name
		}
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		if category := normalizeCategory(*in.Category); category != "" {
			item.Category = category
		}
	}
	if in.Price != nil && *in.Price != 0 {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		item.Price = *in.Price
	}
	if in.TaxPercent != nil {
		if err := validateTax(*in.TaxPercent); err != nil {
			return nil, err
		}
		item.TaxPercent = *in.TaxPercent
	}
	if in.FoodType != nil {
		switch ft := *in.FoodType; {
		case ft == "":
			item.FoodType = models.DefaultFoodType
		case ft.Valid():
			item.FoodType = ft
		default:
			return nil, models.NewValidationError("Invalid foodType")
		}
	}
	if in.Veg != nil {
		switch v := *in.Veg; {
		case v == "":
			item.Veg = models.DefaultVeg
		case v.Valid():
			item.Veg = v
		default:
			return nil, models.NewValidationError("Invalid veg")
		}
	}
	if in.Image.Set {
		item.Image = in.Image.Values
		if item.Image == nil {
			item.Image = []string{}
		}
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, in.RestaurantID, "update")
	return item, nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, restaurantID, id string) error {
	if strings.TrimSpace(id) == "" {
		return errMenuIDRequired
	}
	if err := s.menuRepo.DeleteScoped(ctx, id, restaurantID); err != nil {
		return err
	}
	s.afterWrite(ctx, restaurantID, "delete")
	return nil
}

func (s *MenuService) SetHidden(ctx context.Context, restaurantID, id string, hidden bool) (*models.MenuItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.NewValidationError("Item ID is required")
	}
	item, err := s.menuRepo.SetHidden(ctx, id, restaurantID, hidden)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, restaurantID, "set_hidden")
	return item, nil
}

func (s *MenuService) ListMenuItems(ctx context.Context, restaurantID string, includeHidden bool) ([]models.MenuItem, error) {
	return s.menuRepo.List(ctx, restaurantID, includeHidden)
}

// PublicMenu returns the sectioned customer menu, served from Redis when cached.
func (s *MenuService) PublicMenu(ctx context.Context, restaurantID string) (*PublicMenu, error) {
	var menu PublicMenu
	err := cache.Aside(ctx, cache.MenuKey(restaurantID), &menu, s.cacheTTL, func() error {
		profile, err := s.profileRepo.GetByRestaurantID(ctx, restaurantID)
		if err != nil {
			return err
		}
		items, err := s.menuRepo.List(ctx, restaurantID, false)
		if err != nil {
			return err
		}
		menu = PublicMenu{
			Profile: PublicProfile{
				RestaurantID: profile.RestaurantID,
				Name:         profile.Name,
				Description:  profile.Description,
				Address:      profile.Address,
				ThemeColor:   profile.ThemeColor,
				Avatar:       profile.Avatar,
				Cover:        profile.Cover,
				Categories:   profile.Categories,
			},
			Sections: storefront.Sections(profile.Categories, items),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (s *MenuService) afterWrite(ctx context.Context, restaurantID, operation string) {
	observability.MenuMutations.WithLabelValues(operation).Inc()
	cache.InvalidateMenu(ctx, restaurantID)
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

func validatePrice(p float64) error {
	if p < 0 {
		return models.NewValidationError("Price must be a positive number")
	}
	return nil
}

func validateTax(t float64) error {
	if t < 0 || t > 100 {
		return models.NewValidationError("taxPercent must be between 0 and 100")
	}
	return nil
}
