package service

import (
	"context"
	"strings"

	"menuboard/internal/cache"
	"menuboard/internal/models"
	"menuboard/internal/repository"
)

type ProfileService struct {
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
	menuRepo    repository.MenuRepository
}

type UpdateProfileInput struct {
	RestaurantID string
	Name         *string
	Description  *string
	Address      *string
	ThemeColor   *models.HSL
	Avatar       *string
	Cover        *string
}

// Dashboard is the admin view of a restaurant: its profile and every item,
// hidden ones included.
type Dashboard struct {
	Profile *models.Profile   `json:"profile"`
	Menus   []models.MenuItem `json:"menus"`
}

func NewProfileService(
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	menuRepo repository.MenuRepository,
) *ProfileService {
	return &ProfileService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		menuRepo:    menuRepo,
	}
}

// NormalizeCategories trims, lowercases and drops empty names. Duplicates
// collapse to their first occurrence.
func NormalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// ReplaceCategories overwrites the category list of the profile linked to username.
func (s *ProfileService) ReplaceCategories(ctx context.Context, username string, categories []string) ([]string, error) {
	profile, err := s.linkedProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeCategories(categories)
	if err := s.profileRepo.ReplaceCategories(ctx, profile.ID, normalized); err != nil {
		return nil, err
	}
	cache.InvalidateMenu(ctx, profile.RestaurantID)
	return normalized, nil
}

// linkedProfile follows account -> profile. Either hop failing is a NOT_FOUND.
func (s *ProfileService) linkedProfile(ctx context.Context, username string) (*models.Profile, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil || account.ProfileID == nil || *account.ProfileID == "" {
		return nil, repository.ErrProfileNotFound
	}
	return s.profileRepo.GetByID(ctx, *account.ProfileID)
}

func (s *ProfileService) Dashboard(ctx context.Context, restaurantID string) (*Dashboard, error) {
	profile, err := s.profileRepo.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	menus, err := s.menuRepo.List(ctx, restaurantID, true)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Profile: profile, Menus: menus}, nil
}

// UpdateProfile applies the fields present in the input.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByRestaurantID(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Restaurant name cannot be empty")
		}
		profile.Name = name
	}
	if in.Description != nil {
		profile.Description = strings.TrimSpace(*in.Description)
	}
	if in.Address != nil {
		profile.Address = strings.TrimSpace(*in.Address)
	}
	if in.ThemeColor != nil {
		if !validHSL(*in.ThemeColor) {
			return nil, models.NewValidationError("Invalid theme color")
		}
		profile.ThemeColor = *in.ThemeColor
	}
	if in.Avatar != nil {
		profile.Avatar = strings.TrimSpace(*in.Avatar)
	}
	if in.Cover != nil {
		profile.Cover = strings.TrimSpace(*in.Cover)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	cache.InvalidateMenu(ctx, profile.RestaurantID)
	return profile, nil
}

func validHSL(c models.HSL) bool {
	return c.H >= 0 && c.H <= 360 && c.S >= 0 && c.S <= 100 && c.L >= 0 && c.L <= 100
}
