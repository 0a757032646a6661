package order

import "time"

// Item is one order line. ProductName is only populated by List, which joins
// the product table for display.
type Item struct {
	ID          int64   `json:"item_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order is the aggregate root. Total is always recomputed from the items at
// creation time and never taken from the caller.
type Order struct {
	ID           int64      `json:"id"`
	Code         string     `json:"code"`
	CustomerID   int64      `json:"customer_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	Date         *time.Time `json:"date"`
	Total        float64    `json:"total"`
	Items        []Item     `json:"items"`
}

// NewItem is a line of an incoming create request. Price is a snapshot taken
// at order time, independent of the product's current price.
type NewItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}
