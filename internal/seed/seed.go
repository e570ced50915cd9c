package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"menuboard/internal/models"
	"menuboard/internal/repository"
	"menuboard/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune a Seeder.
type SeedOptions struct {
	// HashCost is the bcrypt cost for fixture passwords. Zero means bcrypt.DefaultCost.
	HashCost int
}

// Result counts what Apply created.
type Result struct {
	Restaurants int
	Skipped     int
	Tables      int
	Items       int
}

// Seeder writes fixtures through the repositories.
type Seeder struct {
	db       *gorm.DB
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	menus    repository.MenuRepository
	tables   repository.TableRepository
	opts     SeedOptions
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts SeedOptions) *Seeder {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &Seeder{
		db:       db,
		accounts: repository.NewAccountRepository(db),
		profiles: repository.NewProfileRepository(db),
		menus:    repository.NewMenuRepository(db),
		tables:   repository.NewTableRepository(db),
		opts:     opts,
	}
}

// Apply creates every restaurant of f. Restaurants whose username or email is
// already taken are skipped, so applying the same fixture twice is harmless.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	for _, r := range f.Restaurants {
		created, err := s.restaurant(ctx, r)
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", r.Username, err)
		}
		if !created {
			res.Skipped++
			continue
		}
		res.Restaurants++
		res.Tables += r.Tables
		res.Items += len(r.Items)
	}
	return res, nil
}

func (s *Seeder) restaurant(ctx context.Context, r RestaurantFixture) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(r.Email))
	exists, err := s.accounts.ExistsByUsernameOrEmail(ctx, r.Username, email)
	if err != nil {
		return false, err
	}
	if exists {
		log.Printf("seed: %s already exists, skipping", r.Username)
		return false, nil
	}

	password := r.Password
	if password == "" {
		password = DemoPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.HashCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Username:           r.Username,
		Email:              email,
		Password:           string(hashed),
		Verified:           true,
		AccountActive:      true,
		SubscriptionActive: true,
	}
	profile := &models.Profile{
		RestaurantID: r.Username,
		Name:         r.Name,
		Description:  r.Description,
		Address:      r.Address,
		ThemeColor:   r.ThemeColor,
		Categories:   []string{},
	}
	if err := s.accounts.Register(ctx, account, profile); err != nil {
		return false, err
	}

	if len(r.Categories) > 0 {
		categories := service.NormalizeCategories(r.Categories)
		if err := s.profiles.ReplaceCategories(ctx, profile.ID, categories); err != nil {
			return false, err
		}
	}

	if r.Tables > 0 {
		if err := s.tables.ReplaceAll(ctx, r.Username, models.NumberedTables(r.Username, r.Tables)); err != nil {
			return false, err
		}
	}

	for _, it := range r.Items {
		images := it.Images
		if images == nil {
			images = []string{}
		}
		item := &models.MenuItem{
			RestaurantID: r.Username,
			Name:         it.Name,
			Description:  it.Description,
			Category:     strings.ToLower(strings.TrimSpace(it.Category)),
			Price:        it.Price,
			TaxPercent:   it.TaxPercent,
			FoodType:     it.FoodType,
			Veg:          it.Veg,
			Image:        images,
			Hidden:       it.Hidden,
		}
		if err := s.menus.Create(ctx, item); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ClearAll deletes every seeded entity.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.OrderProduct{}, &models.Order{}, &models.Customer{},
			&models.MenuItem{}, &models.Table{}, &models.Account{}, &models.Profile{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
