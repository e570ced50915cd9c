package models

// Customer is the person who placed an order.
type Customer struct {
	Document
	Name  string `json:"name"`
	Phone string `gorm:"size:32" json:"phone"`
}

// Order is created once at checkout.
type Order struct {
	Document
	RestaurantID string         `gorm:"index;not null;size:64" json:"restaurantID"`
	CustomerID   string         `gorm:"type:varchar(36);index" json:"-"`
	Customer     *Customer      `json:"customer,omitempty"`
	Table        string         `gorm:"size:16" json:"table"`
	Products     []OrderProduct `json:"products"`
	Subtotal     float64        `json:"subtotal"`
	Tax          float64        `json:"tax"`
	Total        float64        `json:"total"`
}

// OrderProduct is one line of an order.
type OrderProduct struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	OrderID   string    `gorm:"type:varchar(36);index;not null" json:"-"`
	ProductID string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Product   *MenuItem `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}
