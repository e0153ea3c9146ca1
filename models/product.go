package models

// Product is a purchasable catalog entry. Stock only moves at checkout.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Unit        string  `json:"unit"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	DemandTrend string  `json:"demandTrend,omitempty"` // "rising", "stable", "falling"
}

// LowStock reports whether the storefront should flag the product.
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// LowStockThreshold is the stock level below which a product is flagged.
const LowStockThreshold = 10

// Category groups products on the storefront.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
