// Package service contains the business rules behind the HTTP handlers.
package service

import (
	"context"
	"strings"

	"menuboard/internal/models"
	"menuboard/internal/repository"
	"menuboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	accountRepo repository.AccountRepository
	hashCost    int
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	RestaurantName string
	Description    string
	Address        string
	ThemeColor     *models.HSL
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

var errInvalidCredentials = models.NewUnauthorizedError("Invalid credentials")

func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, hashCost: bcrypt.DefaultCost}
}

// Register creates an account and its restaurant profile.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Account, *models.Profile, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	restaurantName := strings.TrimSpace(in.RestaurantName)

	if username == "" || email == "" || in.Password == "" || restaurantName == "" {
		return nil, nil, models.NewValidationError("Missing required fields: username, email, password, restaurantName")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}

	exists, err := s.accountRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, repository.ErrAccountExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	account := &models.Account{
		Username:           username,
		Email:              email,
		Password:           string(hashed),
		Verified:           true,
		AccountActive:      true,
		SubscriptionActive: true,
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = models.DefaultProfileDescription
	}
	profile := &models.Profile{
		RestaurantID: username,
		Name:         restaurantName,
		Description:  description,
		Address:      strings.TrimSpace(in.Address),
		Categories:   []string{},
	}
	if in.ThemeColor != nil {
		profile.ThemeColor = *in.ThemeColor
	}

	if err := s.accountRepo.Register(ctx, account, profile); err != nil {
		return nil, nil, err
	}
	return account, profile, nil
}

// Authenticate checks credentials by username, falling back to email.
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (*models.Account, error) {
	if in.Password == "" || (strings.TrimSpace(in.Username) == "" && strings.TrimSpace(in.Email) == "") {
		return nil, models.NewValidationError("Username or email and password are required")
	}

	var (
		account *models.Account
		err     error
	)
	if username := strings.TrimSpace(in.Username); username != "" {
		account, err = s.accountRepo.GetByUsername(ctx, username)
	} else {
		account, err = s.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	}
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !account.AccountActive {
		return nil, models.NewUnauthorizedError("Account is disabled")
	}
	return account, nil
}

// GetAccount loads the account behind a session.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}
