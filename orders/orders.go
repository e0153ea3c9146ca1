// Package orders is the authoritative record of every order and its
// fulfillment status.
package orders

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"dashmart/catalog"
	"dashmart/metrics"
	"dashmart/models"
	"dashmart/utils"
)

// Inventory is the part of the catalog checkout needs.
type Inventory interface {
	DeductAll(lines []catalog.Deduction) error
}

// Publisher receives order events. Implementations must not block.
type Publisher interface {
	Emit(ctx context.Context, ev models.OrderEvent)
}

// Manager owns the order list. All mutations happen under one lock, so
// checkouts and transitions apply in the order they arrive.
type Manager struct {
	mu     sync.Mutex
	orders []models.Order
	index  map[string]int

	inventory Inventory
	publisher Publisher
	now       func() time.Time
	newID     func() string
}

// Option customises a Manager.
type Option func(*Manager)

// WithPublisher sends order events to p.
func WithPublisher(p Publisher) Option {
	return func(m *Manager) { m.publisher = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides the order id source.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

func NewManager(inventory Inventory, opts ...Option) *Manager {
	m := &Manager{
		index:     make(map[string]int),
		inventory: inventory,
		now:       time.Now,
		newID:     func() string { return utils.ShortID(9) },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Checkout turns a cart snapshot into a PLACED order, deducting stock for
// every line. Nothing is recorded if the deduction fails.
func (m *Manager) Checkout(ctx context.Context, items []models.CartItem, storeID string) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	snapshot := make([]models.CartItem, 0, len(items))
	lines := make([]catalog.Deduction, 0, len(items))
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		snapshot = append(snapshot, item)
		lines = append(lines, catalog.Deduction{ProductID: item.ID, Quantity: item.Quantity})
		total += item.LineTotal()
	}
	if len(snapshot) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.inventory.DeductAll(lines); err != nil {
		return models.Order{}, fmt.Errorf("checkout: %w", err)
	}

	order := models.Order{
		ID:        m.uniqueIDLocked(),
		Items:     snapshot,
		Status:    models.StatusPlaced,
		Timestamp: m.now(),
		ETA:       models.DefaultETAMinutes,
		Total:     total,
		StoreID:   storeID,
	}
	m.index[order.ID] = len(m.orders)
	m.orders = append(m.orders, order)

	metrics.OrdersPlaced.Inc()
	log.Printf("orders: %s placed with %d lines, total %.2f", order.ID, len(snapshot), total)
	m.emitLocked(ctx, models.EventOrderCreated, order)
	return order.Clone(), nil
}

func (m *Manager) uniqueIDLocked() string {
	for {
		id := m.newID()
		if _, taken := m.index[id]; !taken {
			return id
		}
	}
}

// Transition moves an order to newStatus, which must directly follow its
// current status.
func (m *Manager) Transition(ctx context.Context, orderID string, newStatus models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	order := m.orders[i]

	next, ok := order.Status.Next()
	if !ok || next != newStatus {
		metrics.TransitionsRejected.Inc()
		log.Printf("orders: rejected %s %s -> %s", orderID, order.Status, newStatus)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	order.Status = newStatus
	now := m.now()
	switch newStatus {
	case models.StatusPicking:
		order.PickingStartedAt = &now
	case models.StatusPacked:
		order.PackedAt = &now
	}
	m.orders[i] = order

	metrics.Transitions.WithLabelValues(string(newStatus)).Inc()
	log.Printf("orders: %s moved to %s", orderID, newStatus)
	m.emitLocked(ctx, models.EventOrderTransitioned, order)
	return nil
}

func (m *Manager) emitLocked(ctx context.Context, kind string, order models.Order) {
	if m.publisher == nil {
		return
	}
	m.publisher.Emit(ctx, models.OrderEvent{Type: kind, Order: order.Clone()})
}

// Get returns a copy of one order.
func (m *Manager) Get(orderID string) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	return m.orders[i].Clone(), nil
}

// List returns every order, oldest first.
func (m *Manager) List() []models.Order {
	return m.filter(func(models.Order) bool { return true })
}

// ListPending returns orders that are not delivered yet, oldest first.
func (m *Manager) ListPending() []models.Order {
	return m.filter(func(o models.Order) bool { return !o.Status.IsTerminal() })
}

func (m *Manager) filter(keep func(models.Order) bool) []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}
