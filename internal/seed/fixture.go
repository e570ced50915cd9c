// Package seed loads demo restaurants into the database, either from a YAML
// fixture or generated with fake data. It is meant for development and tests.
package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"menuboard/internal/models"

	"gopkg.in/yaml.v3"
)

// Fixture is the top-level document of a seed file.
type Fixture struct {
	Restaurants []RestaurantFixture `yaml:"restaurants"`
}

// RestaurantFixture describes one owner account, its profile, tables and menu.
type RestaurantFixture struct {
	Username    string        `yaml:"username"`
	Email       string        `yaml:"email"`
	Password    string        `yaml:"password"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Address     string        `yaml:"address"`
	ThemeColor  models.HSL    `yaml:"themeColor"`
	Categories  []string      `yaml:"categories"`
	Tables      int           `yaml:"tables"`
	Items       []ItemFixture `yaml:"items"`
}

// ItemFixture is a menu item of a RestaurantFixture.
type ItemFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Category    string          `yaml:"category"`
	Price       float64         `yaml:"price"`
	TaxPercent  float64         `yaml:"taxPercent"`
	FoodType    models.FoodType `yaml:"foodType"`
	Veg         models.Veg      `yaml:"veg"`
	Images      []string        `yaml:"images"`
	Hidden      bool            `yaml:"hidden"`
}

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	// #nosec G304: path comes from CLI flags in a dev tool
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(raw)
}

// ParseFixture decodes a YAML fixture and fills item defaults.
func ParseFixture(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(f.Restaurants) == 0 {
		return nil, errors.New("fixture has no restaurants")
	}

	for i := range f.Restaurants {
		r := &f.Restaurants[i]
		r.Username = strings.TrimSpace(r.Username)
		if r.Username == "" {
			return nil, fmt.Errorf("restaurant %d: username is required", i)
		}
		if r.Name == "" {
			r.Name = r.Username
		}
		if r.Description == "" {
			r.Description = models.DefaultProfileDescription
		}
		for j := range r.Items {
			item := &r.Items[j]
			if item.Name == "" || item.Category == "" || item.Price <= 0 {
				return nil, fmt.Errorf("restaurant %s item %d: name, price and category are required", r.Username, j)
			}
			if item.FoodType == "" {
				item.FoodType = models.DefaultFoodType
			}
			if item.Veg == "" {
				item.Veg = models.DefaultVeg
			}
			if !item.FoodType.Valid() || !item.Veg.Valid() {
				return nil, fmt.Errorf("restaurant %s item %s: invalid foodType or veg", r.Username, item.Name)
			}
		}
	}
	return &f, nil
}
