package seed

import (
	"fmt"
	"strings"

	"menuboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword is the password of every generated account.
const DemoPassword = "Demo12345"

var demoCategories = []string{"entradas", "platos fuertes", "bebidas", "postres"}

// Factory generates fake restaurants.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// Restaurant builds a fixture with the given number of tables and items.
func (f *Factory) Restaurant(tables, items int) RestaurantFixture {
	company := f.faker.Company()
	username := slug(company) + fmt.Sprintf("-%d", f.faker.Number(100, 999))

	r := RestaurantFixture{
		Username:    username,
		Email:       username + "@" + f.faker.DomainName(),
		Password:    DemoPassword,
		Name:        company,
		Description: f.faker.Sentence(8),
		Address:     f.faker.Street() + ", " + f.faker.City(),
		ThemeColor: models.HSL{
			H: float64(f.faker.Number(0, 360)),
			S: float64(f.faker.Number(40, 90)),
			L: float64(f.faker.Number(30, 60)),
		},
		Categories: append([]string(nil), demoCategories...),
		Tables:     tables,
	}

	for i := 0; i < items; i++ {
		r.Items = append(r.Items, f.Item(demoCategories[i%len(demoCategories)]))
	}
	return r
}

// Item builds a menu item fixture in category. Prices are whole hundreds of pesos.
func (f *Factory) Item(category string) ItemFixture {
	foodTypes := []models.FoodType{models.FoodTypeSweet, models.FoodTypeSpicy, models.FoodTypeExtraSpicy}
	vegs := []models.Veg{models.VegVeg, models.VegNonVeg, models.VegContainsEgg}

	return ItemFixture{
		Name:        f.faker.Dinner(),
		Description: f.faker.Sentence(10),
		Category:    category,
		Price:       float64(f.faker.Number(40, 600) * 100),
		TaxPercent:  float64(f.faker.RandomInt([]int{0, 8, 19})),
		FoodType:    foodTypes[f.faker.Number(0, len(foodTypes)-1)],
		Veg:         vegs[f.faker.Number(0, len(vegs)-1)],
		Images:      []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID())},
	}
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if len(out) > 20 {
		out = strings.TrimSuffix(out[:20], "-")
	}
	if out == "" {
		out = "resto"
	}
	return out
}
