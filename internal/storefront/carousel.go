package storefront

import "fmt"

// Carousel pages through an item's images with wrap-around navigation.
type Carousel struct {
	images []string
	index  int
}

// NewCarousel builds a carousel over the valid entries of images.
func NewCarousel(images []string) *Carousel {
	return &Carousel{images: ValidImages(images)}
}

// Len is the number of images.
func (c *Carousel) Len() int { return len(c.images) }

// Index is the zero-based position of the current image.
func (c *Carousel) Index() int { return c.index }

// Current returns the image being shown, empty when there are none.
func (c *Carousel) Current() string {
	if len(c.images) == 0 {
		return ""
	}
	return c.images[c.index]
}

// Next moves forward, wrapping to the first image.
func (c *Carousel) Next() {
	if n := len(c.images); n > 0 {
		c.index = (c.index + 1) % n
	}
}

// Prev moves back, wrapping to the last image.
func (c *Carousel) Prev() {
	if n := len(c.images); n > 0 {
		c.index = (c.index - 1 + n) % n
	}
}

// Select jumps to index i. Out of range selections are ignored.
func (c *Carousel) Select(i int) bool {
	if i < 0 || i >= len(c.images) {
		return false
	}
	c.index = i
	return true
}

// Reset returns to the first image.
func (c *Carousel) Reset() { c.index = 0 }

// Navigable reports whether prev/next controls and thumbnails apply.
func (c *Carousel) Navigable() bool { return len(c.images) > 1 }

// Counter renders the position as "i / n".
func (c *Carousel) Counter() string {
	if len(c.images) == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", c.index+1, len(c.images))
}
