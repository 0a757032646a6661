package product

// Product carries the display names of its category and supplier when loaded
// through List, which left-joins both tables.
type Product struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	CategoryID   *int64  `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Price        float64 `json:"price"`
	SupplierID   *int64  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name,omitempty"`
}
