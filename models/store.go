package models

// DarkStore describes the fulfilling micro-warehouse. The gauges are static
// display values and are not derived from orders or products.
type DarkStore struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	ActiveRiders    int    `json:"activeRiders"`
	IdleRiders      int    `json:"idleRiders"`
	OrdersInQueue   int    `json:"ordersInQueue"`
	InventoryHealth int    `json:"inventoryHealth"` // 0-100
}
