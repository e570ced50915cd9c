package editor

import (
	"context"
	"strings"

	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ErrRequiredFields is the validation failure shown before any request is sent.
var ErrRequiredFields = models.NewValidationError("Name, Price and Category are required")

// Form is the add/edit menu item dialog.
type Form struct {
	Name        string
	Description string
	Category    string
	Price       float64
	TaxPercent  float64
	FoodType    models.FoodType
	Veg         models.Veg
	Images      *ImageRows

	id     string
	saving bool
}

// NewForm starts an empty form preselecting the profile's first category.
func NewForm(profile *models.Profile) *Form {
	f := &Form{
		FoodType: models.DefaultFoodType,
		Veg:      models.DefaultVeg,
		Images:   NewImageRows(nil),
	}
	if profile != nil && len(profile.Categories) > 0 {
		f.Category = profile.Categories[0]
	}
	return f
}

// EditForm loads an existing item.
func EditForm(item models.MenuItem) *Form {
	return &Form{
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		TaxPercent:  item.TaxPercent,
		FoodType:    item.FoodType,
		Veg:         item.Veg,
		Images:      NewImageRows(item.Image),
		id:          item.ID,
	}
}

// IsNew reports whether saving creates an item.
func (f *Form) IsNew() bool { return f.id == "" }

// Method is the HTTP method Save uses.
func (f *Form) Method() string {
	if f.IsNew() {
		return fiber.MethodPost
	}
	return fiber.MethodPut
}

// Title is the dialog heading.
func (f *Form) Title() string {
	if f.IsNew() {
		return "Add New Menu Item"
	}
	return "Edit Menu Item"
}

// Saving reports whether a save is in flight.
func (f *Form) Saving() bool { return f.saving }

// Validate checks the required fields.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" || f.Price == 0 || strings.TrimSpace(f.Category) == "" {
		return ErrRequiredFields
	}
	return nil
}

// Input builds the request body from the form.
func (f *Form) Input() MenuItemInput {
	in := MenuItemInput{
		ID:          f.id,
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		Category:    f.Category,
		Price:       f.Price,
		TaxPercent:  f.TaxPercent,
		FoodType:    f.FoodType,
		Veg:         f.Veg,
		Image:       []string{},
	}
	if f.Images != nil {
		in.Image = f.Images.Values()
	}
	return in
}

// Save validates and then creates or updates the item. The form is left
// unchanged when the call fails.
func (f *Form) Save(ctx context.Context, api API) (*models.MenuItem, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.saving = true
	defer func() { f.saving = false }()

	if f.IsNew() {
		return api.CreateMenuItem(ctx, f.Input())
	}
	return api.UpdateMenuItem(ctx, f.Input())
}
