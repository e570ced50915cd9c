// Package models holds the persisted entities and the shared error envelope.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is embedded by every persisted entity. IDs are UUID strings
// serialized as _id.
type Document struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an ID when the caller did not.
func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Account is the login identity of a restaurant owner. Username doubles as
// the restaurant identifier.
type Account struct {
	Document
	Username           string  `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Email              string  `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Password           string  `gorm:"not null" json:"-"`
	Verified           bool    `json:"verified"`
	AccountActive      bool    `json:"accountActive"`
	SubscriptionActive bool    `json:"subscriptionActive"`
	ProfileID          *string `gorm:"type:varchar(36);index" json:"profile,omitempty"`
}

// HSL is a theme color.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Profile is the public face of a restaurant.
type Profile struct {
	Document
	RestaurantID string   `gorm:"uniqueIndex;not null;size:64" json:"restaurantID"`
	Name         string   `gorm:"not null" json:"name"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	ThemeColor   HSL      `gorm:"serializer:json;type:text" json:"themeColor"`
	Categories   []string `gorm:"serializer:json;type:text" json:"categories"`
	Avatar       string   `json:"avatar"`
	Cover        string   `json:"cover"`
}

// DefaultProfileDescription is used when registration omits a description.
const DefaultProfileDescription = "New Restaurant"

// HasCategory reports whether name is already registered.
func (p *Profile) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c == name {
			return true
		}
	}
	return false
}
