package models

// CartItem is a value snapshot of a Product plus the selected quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity for this entry.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}

// CartView is what the storefront renders for the cart drawer.
type CartView struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"` // sum of quantities
	Total float64    `json:"total"`
}
