// Package storefront holds the customer-facing menu state: the cart, the
// product detail modal, image carousels, lazily rendered cards and the
// sectioned public menu.
package storefront

import "sort"

// Cart maps a menu item id to its quantity. Reducers never mutate the
// receiver; they return a new Cart.
type Cart map[string]int

// Line is one entry of a cart.
type Line struct {
	ID       string
	Quantity int
}

// Quantity returns the quantity for id, zero when absent.
func (c Cart) Quantity(id string) int {
	return c[id]
}

// Increase returns a cart with one more unit of id.
func (c Cart) Increase(id string) Cart {
	return c.Add(id, 1)
}

// Decrease returns a cart with one less unit of id. Items reaching zero are
// removed; quantities never go negative.
func (c Cart) Decrease(id string) Cart {
	return c.Add(id, -1)
}

// Add returns a cart with n units added to id (n may be negative).
func (c Cart) Add(id string, n int) Cart {
	next := c.clone()
	if id == "" {
		return next
	}
	q := next[id] + n
	if q <= 0 {
		delete(next, id)
		return next
	}
	next[id] = q
	return next
}

// Count is the total number of units.
func (c Cart) Count() int {
	total := 0
	for _, q := range c {
		total += q
	}
	return total
}

// Lines returns the cart entries sorted by id.
func (c Cart) Lines() []Line {
	lines := make([]Line, 0, len(c))
	for id, q := range c {
		lines = append(lines, Line{ID: id, Quantity: q})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}

func (c Cart) clone() Cart {
	next := make(Cart, len(c)+1)
	for k, v := range c {
		next[k] = v
	}
	return next
}

// CartActions is the increase/decrease pair a cart owner hands to menu cards
// and the detail modal.
type CartActions interface {
	Increase(id string)
	Decrease(id string)
}

// CartStore holds the current cart and applies reducers to it.
type CartStore struct {
	cart Cart
}

// NewCartStore returns an empty store.
func NewCartStore() *CartStore {
	return &CartStore{cart: Cart{}}
}

// Increase implements CartActions.
func (s *CartStore) Increase(id string) { s.cart = s.cart.Increase(id) }

// Decrease implements CartActions.
func (s *CartStore) Decrease(id string) { s.cart = s.cart.Decrease(id) }

// Cart returns the current snapshot.
func (s *CartStore) Cart() Cart { return s.cart }
