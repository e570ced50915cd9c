// Package editor holds the admin dashboard's menu editing state: the item
// list with its hide and delete actions, the item form, image rows and
// inline category creation.
package editor

import (
	"context"

	"menuboard/internal/models"
)

// MenuItemInput is the JSON body of the admin menu create and update calls.
type MenuItemInput struct {
	ID          string          `json:"_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	TaxPercent  float64         `json:"taxPercent"`
	FoodType    models.FoodType `json:"foodType"`
	Veg         models.Veg      `json:"veg"`
	Image       []string        `json:"image"`
}

// API is the subset of the admin HTTP API the editor drives.
type API interface {
	CreateMenuItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	SetHidden(ctx context.Context, id string, hidden bool) (*models.MenuItem, error)
	ReplaceCategories(ctx context.Context, categories []string) ([]string, error)
}
