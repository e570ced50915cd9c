// Package qr renders table landing URLs as QR code images.
package qr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// Generator encodes table links.
type Generator interface {
	TableURL(restaurantID, table string) string
	TablePNG(restaurantID, table string) ([]byte, error)
}

// TableCodes builds links of the form {BaseURL}/{restaurantID}?table={table}.
type TableCodes struct {
	BaseURL string
	Size    int
}

// NewTableCodes returns a generator rooted at baseURL.
func NewTableCodes(baseURL string) *TableCodes {
	return &TableCodes{BaseURL: strings.TrimRight(baseURL, "/"), Size: DefaultSize}
}

// TableURL returns the landing URL printed on a table.
func (g *TableCodes) TableURL(restaurantID, table string) string {
	return fmt.Sprintf("%s/%s?table=%s", g.BaseURL, url.PathEscape(restaurantID), url.QueryEscape(table))
}

// TablePNG encodes TableURL as a PNG.
func (g *TableCodes) TablePNG(restaurantID, table string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(g.TableURL(restaurantID, table), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode table qr: %w", err)
	}
	return png, nil
}
