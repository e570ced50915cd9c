package storefront

import "menuboard/internal/models"

// Section is one category of the public menu.
type Section struct {
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// Sections groups visible items by the profile's category order. Categories
// that are not in the profile list follow in order of first appearance.
// Empty sections are omitted.
func Sections(categories []string, items []models.MenuItem) []Section {
	index := make(map[string]int, len(categories))
	sections := make([]Section, 0, len(categories))
	for _, c := range categories {
		if _, dup := index[c]; dup {
			continue
		}
		index[c] = len(sections)
		sections = append(sections, Section{Category: c})
	}

	for _, item := range items {
		if item.Hidden {
			continue
		}
		i, ok := index[item.Category]
		if !ok {
			i = len(sections)
			index[item.Category] = i
			sections = append(sections, Section{Category: item.Category})
		}
		sections[i].Items = append(sections[i].Items, item)
	}

	out := sections[:0]
	for _, s := range sections {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}
