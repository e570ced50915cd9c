package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartReducers(t *testing.T) {
	empty := Cart{}

	one := empty.Increase("pizza")
	assert.Equal(t, 1, one.Quantity("pizza"))
	assert.Equal(t, 0, empty.Quantity("pizza"), "reducers must not mutate the receiver")

	two := one.Increase("pizza").Increase("soda")
	assert.Equal(t, 3, two.Count())

	back := two.Decrease("soda").Decrease("soda")
	assert.Equal(t, 0, back.Quantity("soda"))
	_, present := back["soda"]
	assert.False(t, present)
	assert.Equal(t, 2, back.Quantity("pizza"))

	assert.Equal(t, 0, Cart{}.Decrease("ghost").Quantity("ghost"))
	assert.Equal(t, 0, one.Add("pizza", -5).Quantity("pizza"))
	assert.Empty(t, Cart{}.Increase(""))
}

func TestCartLinesAreSorted(t *testing.T) {
	c := Cart{}.Add("b", 2).Add("a", 1).Add("c", 3)
	assert.Equal(t, []Line{{ID: "a", Quantity: 1}, {ID: "b", Quantity: 2}, {ID: "c", Quantity: 3}}, c.Lines())
}

func TestCartStore(t *testing.T) {
	s := NewCartStore()
	s.Increase("x")
	s.Increase("x")
	s.Decrease("x")
	s.Decrease("x")
	s.Decrease("x")
	assert.Equal(t, 0, s.Cart().Quantity("x"))
	assert.Equal(t, 0, s.Cart().Count())
}

func TestDraft(t *testing.T) {
	d := NewDraft("spicy")
	assert.False(t, d.Dirty())

	d.Set("sweet")
	assert.True(t, d.Dirty())
	assert.Equal(t, "spicy", d.Committed())

	prev := d.Commit()
	assert.Equal(t, "spicy", prev)
	assert.Equal(t, "sweet", d.Committed())
	assert.False(t, d.Dirty())

	d.Set("extra-spicy")
	d.Discard()
	assert.Equal(t, "sweet", d.Local())
}
