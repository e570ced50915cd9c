package models

import "strconv"

// Table is a physical table of a restaurant. Username is the short code
// printed in the table's QR link.
type Table struct {
	Document
	RestaurantID string `gorm:"uniqueIndex:idx_table_restaurant_username;not null;size:64" json:"restaurantID"`
	Name         string `json:"name"`
	Username     string `gorm:"uniqueIndex:idx_table_restaurant_username;not null;size:16" json:"username"`
}

// NumberedTables builds tables "Table 1".."Table n" for a restaurant.
func NumberedTables(restaurantID string, n int) []Table {
	tables := make([]Table, 0, n)
	for i := 1; i <= n; i++ {
		num := strconv.Itoa(i)
		tables = append(tables, Table{
			RestaurantID: restaurantID,
			Name:         "Table " + num,
			Username:     num,
		})
	}
	return tables
}
