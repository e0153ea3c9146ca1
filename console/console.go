// Package console drives mission control: the live fulfillment queue and the
// single next action offered for each order.
package console

import (
	"context"
	"errors"
	"fmt"

	"dashmart/models"
)

// Orders is what the console needs from the order manager.
type Orders interface {
	Get(id string) (models.Order, error)
	ListPending() []models.Order
	Transition(ctx context.Context, id string, status models.OrderStatus) error
}

// Inventory is what the console needs from the catalog.
type Inventory interface {
	Snapshot() []models.Product
}

// ErrNoAction is returned by Advance when the order's status offers none.
var ErrNoAction = errors.New("no operator action for this status")

// Action is the one button an operator sees for an order.
type Action struct {
	Label  string             `json:"label"`
	Target models.OrderStatus `json:"target"`
}

// actions covers the operator-driven steps. DISPATCHED has none: delivery is
// reached through the tracking view or an explicit status update.
var actions = map[models.OrderStatus]Action{
	models.StatusPlaced:  {Label: "Start Picking", Target: models.StatusPicking},
	models.StatusPicking: {Label: "Finish Packing", Target: models.StatusPacked},
	models.StatusPacked:  {Label: "Assign Rider", Target: models.StatusDispatched},
}

// NextAction returns the action offered for status, if any.
func NextAction(status models.OrderStatus) (Action, bool) {
	a, ok := actions[status]
	return a, ok
}

// QueueEntry is one row of the fulfillment queue.
type QueueEntry struct {
	Order  models.Order `json:"order"`
	Action *Action      `json:"action,omitempty"`
}

// InventoryBar is one row of the inventory health panel.
type InventoryBar struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Level int    `json:"level"` // min(100, stock)
}

// Dashboard is the mission control header, queue and inventory panel.
type Dashboard struct {
	Store      models.DarkStore `json:"store"`
	QueueDepth int              `json:"queueDepth"`
	Queue      []QueueEntry     `json:"queue"`
	Inventory  []InventoryBar   `json:"inventory"`
	LowStock   []models.Product `json:"lowStock"`
}

// inventoryPanelSize is how many products the health panel shows.
const inventoryPanelSize = 5

type Console struct {
	orders    Orders
	inventory Inventory
	store     models.DarkStore
}

func New(orders Orders, inventory Inventory, store models.DarkStore) *Console {
	return &Console{orders: orders, inventory: inventory, store: store}
}

// Queue lists pending orders, oldest first, each with its action.
func (c *Console) Queue() []QueueEntry {
	pending := c.orders.ListPending()
	out := make([]QueueEntry, 0, len(pending))
	for _, o := range pending {
		entry := QueueEntry{Order: o}
		if a, ok := NextAction(o.Status); ok {
			entry.Action = &a
		}
		out = append(out, entry)
	}
	return out
}

// Advance performs the order's single offered action.
func (c *Console) Advance(ctx context.Context, orderID string) (models.Order, error) {
	order, err := c.orders.Get(orderID)
	if err != nil {
		return models.Order{}, err
	}
	a, ok := NextAction(order.Status)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrNoAction, order.Status)
	}
	if err := c.orders.Transition(ctx, orderID, a.Target); err != nil {
		return models.Order{}, err
	}
	return c.orders.Get(orderID)
}

// Dashboard assembles the full mission control view.
func (c *Console) Dashboard() Dashboard {
	queue := c.Queue()
	products := c.inventory.Snapshot()

	bars := make([]InventoryBar, 0, inventoryPanelSize)
	for i, p := range products {
		if i == inventoryPanelSize {
			break
		}
		level := p.Stock
		if level > 100 {
			level = 100
		}
		bars = append(bars, InventoryBar{ID: p.ID, Name: p.Name, Stock: p.Stock, Level: level})
	}

	low := []models.Product{}
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}

	return Dashboard{
		Store:      c.store,
		QueueDepth: len(queue),
		Queue:      queue,
		Inventory:  bars,
		LowStock:   low,
	}
}
