package storefront

import (
	"strconv"
	"strings"

	"menuboard/internal/models"
)

// DetailModal is the product detail view. Quantity edits stay local until
// Confirm replays the difference against the cart.
type DetailModal struct {
	Item     models.MenuItem
	open     bool
	quantity Draft[int]
	carousel *Carousel
	cart     CartActions
}

// OpenDetail opens the modal for item. current is the quantity the cart
// already holds; the local quantity starts at max(current, 1).
func OpenDetail(item models.MenuItem, current int, cart CartActions) *DetailModal {
	if current < 0 {
		current = 0
	}
	d := &DetailModal{
		Item:     item,
		open:     true,
		quantity: NewDraft(current),
		carousel: NewCarousel(item.Image),
		cart:     cart,
	}
	if current == 0 {
		d.quantity.Set(1)
	}
	return d
}

// IsOpen reports whether the modal is showing.
func (d *DetailModal) IsOpen() bool { return d.open }

// Close hides the modal and drops local edits.
func (d *DetailModal) Close() {
	d.open = false
	d.quantity.Discard()
}

// Quantity is the locally selected quantity.
func (d *DetailModal) Quantity() int { return d.quantity.Local() }

// Increment adds one to the local quantity.
func (d *DetailModal) Increment() { d.quantity.Set(d.quantity.Local() + 1) }

// Decrement removes one from the local quantity, stopping at zero.
func (d *DetailModal) Decrement() {
	if q := d.quantity.Local(); q > 0 {
		d.quantity.Set(q - 1)
	}
}

// Carousel returns the image carousel for the item.
func (d *DetailModal) Carousel() *Carousel { return d.carousel }

// CanConfirm reports whether "add to order" is enabled.
func (d *DetailModal) CanConfirm() bool { return d.cart != nil && d.quantity.Local() > 0 }

// ConfirmLabel is the text of the "add to order" button.
func (d *DetailModal) ConfirmLabel() string {
	if q := d.quantity.Local(); q > 0 {
		return "Añadir " + strconv.Itoa(q) + " al pedido"
	}
	return "Añadir al pedido"
}

// VegLabel renders the dietary badge text.
func (d *DetailModal) VegLabel() string { return VegLabel(d.Item.Veg) }

// Confirm replays the delta between the local and the committed quantity
// as single increase or decrease calls, then closes the modal. It returns
// the applied delta and does nothing while the local quantity is zero.
func (d *DetailModal) Confirm() int {
	if !d.CanConfirm() {
		return 0
	}
	delta := d.quantity.Local() - d.quantity.Committed()
	for i := 0; i < delta; i++ {
		d.cart.Increase(d.Item.ID)
	}
	for i := 0; i > delta; i-- {
		d.cart.Decrease(d.Item.ID)
	}
	d.quantity.Commit()
	d.open = false
	return delta
}

// VegLabel renders a dietary tag for display, e.g. "contains egg".
func VegLabel(v models.Veg) string {
	return strings.ReplaceAll(string(v), "-", " ")
}
