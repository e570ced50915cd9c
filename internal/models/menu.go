package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FoodType describes the flavor profile of a dish.
type FoodType string

const (
	FoodTypeSweet      FoodType = "sweet"
	FoodTypeSpicy      FoodType = "spicy"
	FoodTypeExtraSpicy FoodType = "extra-spicy"
	DefaultFoodType             = FoodTypeSpicy
)

// Valid reports whether f is a known food type.
func (f FoodType) Valid() bool {
	switch f {
	case FoodTypeSweet, FoodTypeSpicy, FoodTypeExtraSpicy:
		return true
	}
	return false
}

// Veg is the dietary classification of a dish.
type Veg string

const (
	VegVeg         Veg = "veg"
	VegNonVeg      Veg = "non-veg"
	VegContainsEgg Veg = "contains-egg"
	DefaultVeg         = VegVeg
)

// Valid reports whether v is a known classification.
func (v Veg) Valid() bool {
	switch v {
	case VegVeg, VegNonVeg, VegContainsEgg:
		return true
	}
	return false
}

// MenuItem is a dish offered by a restaurant.
type MenuItem struct {
	Document
	RestaurantID string   `gorm:"index;not null;size:64" json:"restaurantID"`
	Name         string   `gorm:"not null" json:"name"`
	Description  string   `json:"description"`
	Category     string   `gorm:"index" json:"category"`
	Price        float64  `gorm:"not null" json:"price"`
	TaxPercent   float64  `json:"taxPercent"`
	FoodType     FoodType `gorm:"size:16" json:"foodType"`
	Veg          Veg      `gorm:"size:16" json:"veg"`
	Image        []string `gorm:"serializer:json;type:text" json:"image"`
	Hidden       bool     `gorm:"index" json:"hidden"`
}

// ImageList accepts either a single string or an array in JSON and keeps
// only non-empty trimmed strings. Set records that the key was present,
// including an explicit null.
type ImageList struct {
	Set    bool
	Values []string
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	l.Set = true
	l.Values = []string{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s != "" {
			l.Values = append(l.Values, s)
		}
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for _, v := range raw {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				l.Values = append(l.Values, s)
			}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l ImageList) MarshalJSON() ([]byte, error) {
	if l.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Values)
}

// NewImageList builds a present list from values.
func NewImageList(values ...string) ImageList {
	var l ImageList
	raw, _ := json.Marshal(values)
	_ = l.UnmarshalJSON(raw)
	return l
}
