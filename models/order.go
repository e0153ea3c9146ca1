package models

import "time"

// OrderStatus is one step of the fulfillment sequence.
type OrderStatus string

const (
	StatusPlaced     OrderStatus = "PLACED"
	StatusPicking    OrderStatus = "PICKING"
	StatusPacked     OrderStatus = "PACKED"
	StatusDispatched OrderStatus = "DISPATCHED"
	StatusDelivered  OrderStatus = "DELIVERED"
)

// StatusSequence is the only valid order of statuses.
var StatusSequence = []OrderStatus{
	StatusPlaced,
	StatusPicking,
	StatusPacked,
	StatusDispatched,
	StatusDelivered,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	return s.index() >= 0
}

// Next returns the status that strictly follows s. ok is false for
// DELIVERED and for unknown statuses.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	i := s.index()
	if i < 0 || i == len(StatusSequence)-1 {
		return "", false
	}
	return StatusSequence[i+1], true
}

// IsTerminal is true once the order is delivered.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) index() int {
	for i, v := range StatusSequence {
		if v == s {
			return i
		}
	}
	return -1
}

// DefaultETAMinutes is the delivery promise shown to the shopper.
const DefaultETAMinutes = 10

// Order represents a checked-out cart. Items and Total are frozen at creation.
type Order struct {
	ID               string      `json:"id"`
	Items            []CartItem  `json:"items"`
	Status           OrderStatus `json:"status"`
	Timestamp        time.Time   `json:"timestamp"`
	ETA              int         `json:"eta"` // minutes
	Total            float64     `json:"total"`
	StoreID          string      `json:"storeId"`
	PickingStartedAt *time.Time  `json:"pickingStartTime,omitempty"`
	PackedAt         *time.Time  `json:"packingEndTime,omitempty"`
}

// Clone returns a deep copy so callers never share the items slice.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]CartItem(nil), o.Items...)
	if o.PickingStartedAt != nil {
		t := *o.PickingStartedAt
		c.PickingStartedAt = &t
	}
	if o.PackedAt != nil {
		t := *o.PackedAt
		c.PackedAt = &t
	}
	return c
}

// OrderEvent is broadcast to operator views whenever the queue changes.
type OrderEvent struct {
	Type  string `json:"type"` // "created", "transitioned"
	Order Order  `json:"order"`
}

const (
	EventOrderCreated      = "created"
	EventOrderTransitioned = "transitioned"
)
