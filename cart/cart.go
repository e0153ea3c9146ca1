// Package cart aggregates a shopper's selections before checkout.
package cart

import (
	"math"
	"sync"

	"dashmart/models"
)

// Cart maps product id to a value snapshot taken when the product was first
// added. Entries never hold a quantity below 1.
type Cart struct {
	mu    sync.Mutex
	order []string
	items map[string]models.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{items: make(map[string]models.CartItem)}
}

// Add puts one unit of product in the cart. Products without stock are ignored.
func (c *Cart) Add(product models.Product) {
	if product.Stock <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[product.ID]; ok {
		item.Quantity = addQuantity(item.Quantity, 1)
		c.items[product.ID] = item
		return
	}
	c.items[product.ID] = models.CartItem{Product: product, Quantity: 1}
	c.order = append(c.order, product.ID)
}

// SetQuantity adjusts an entry by delta and drops it once it reaches zero.
// Unknown ids are ignored.
func (c *Cart) SetQuantity(productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[productID]
	if !ok {
		return
	}
	item.Quantity = addQuantity(item.Quantity, delta)
	if item.Quantity > 0 {
		c.items[productID] = item
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// addQuantity saturates at math.MaxInt instead of wrapping negative.
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return q + delta
}

// Total is the sum of price times quantity over all entries.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Cart) totalLocked() float64 {
	var total float64
	for _, id := range c.order {
		total += c.items[id].LineTotal()
	}
	return total
}

// Items returns copies of the entries in the order they were first added.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemsLocked()
}

func (c *Cart) itemsLocked() []models.CartItem {
	out := make([]models.CartItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Count is the number of units across all entries.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, item := range c.items {
		n = addQuantity(n, item.Quantity)
	}
	return n
}

// View bundles items, count and total taken under one lock.
func (c *Cart) View() models.CartView {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.itemsLocked()
	n := 0
	for _, item := range items {
		n = addQuantity(n, item.Quantity)
	}
	return models.CartView{Items: items, Count: n, Total: c.totalLocked()}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]models.CartItem)
	c.order = nil
}

// Drain returns the current items and empties the cart in one step.
func (c *Cart) Drain() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.itemsLocked()
	c.items = make(map[string]models.CartItem)
	c.order = nil
	return items
}

// Restore puts items back after a failed checkout. Entries already present
// keep their snapshot and gain the restored quantity.
func (c *Cart) Restore(items []models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if cur, ok := c.items[item.ID]; ok {
			cur.Quantity = addQuantity(cur.Quantity, item.Quantity)
			c.items[item.ID] = cur
			continue
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}
}
