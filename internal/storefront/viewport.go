package storefront

import "menuboard/internal/models"

// Viewport tracks which cards intersect the visible area. Cards outside it
// render as blank placeholders. With once set, a card stays rendered after
// its first appearance.
type Viewport struct {
	once   bool
	inView map[string]bool
}

// NewViewport creates a viewport tracker.
func NewViewport(once bool) *Viewport {
	return &Viewport{once: once, inView: make(map[string]bool)}
}

// Observe records an intersection change for a card.
func (v *Viewport) Observe(id string, visible bool) {
	if v.once && !visible {
		return
	}
	if visible {
		v.inView[id] = true
		return
	}
	delete(v.inView, id)
}

// Rendered reports whether the card's content should be materialized.
func (v *Viewport) Rendered(id string) bool {
	if v == nil {
		return true
	}
	return v.inView[id]
}

// Card is the render model of a menu card.
type Card struct {
	ID          string
	Blank       bool
	Name        string
	Description string
	Picture     string
	Price       string
	Total       string
	Quantity    int
	VegLabel    string
}

// MenuCard builds the card for item. Off-screen cards only carry their id.
func MenuCard(item models.MenuItem, quantity int, vp *Viewport) Card {
	card := Card{ID: item.ID, Quantity: quantity}
	if !vp.Rendered(item.ID) {
		card.Blank = true
		return card
	}
	card.Name = item.Name
	card.Description = item.Description
	card.Picture, _ = FirstImage(item.Image)
	card.Price = FormatCOP(item.Price)
	card.Total = FormatCOP(LineTotal(item.Price, quantity))
	card.VegLabel = VegLabel(item.Veg)
	return card
}

// LineTotal is price times quantity, or the unit price for an empty line.
func LineTotal(price float64, quantity int) float64 {
	if quantity <= 0 {
		return price
	}
	return price * float64(quantity)
}
