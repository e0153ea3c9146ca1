// Package tracking approximates delivery progress for the shopper's view.
// It never writes to the order record; the status it reports is display-only.
package tracking

import (
	"context"
	"sync"
	"time"

	"dashmart/models"
)

const (
	// Step is how much progress one tick adds.
	Step = 0.5
	// MaxProgress is where the simulation stops.
	MaxProgress = 100.0
	// DefaultInterval is the tick period.
	DefaultInterval = time.Second
)

// StatusFor maps a progress value to the status shown to the shopper.
func StatusFor(progress float64) models.OrderStatus {
	switch {
	case progress < 25:
		return models.StatusPlaced
	case progress < 45:
		return models.StatusPicking
	case progress < 65:
		return models.StatusPacked
	case progress < 95:
		return models.StatusDispatched
	default:
		return models.StatusDelivered
	}
}

// StatusText is the headline the tracking view shows for a status.
func StatusText(s models.OrderStatus) string {
	switch s {
	case models.StatusPlaced:
		return "Order Received"
	case models.StatusPicking:
		return "Picking Ingredients"
	case models.StatusPacked:
		return "Packing Your Order"
	case models.StatusDispatched:
		return "Dash Partner is En Route"
	case models.StatusDelivered:
		return "Delivered!"
	default:
		return ""
	}
}

// Frame is one observation of the simulator.
type Frame struct {
	OrderID       string             `json:"orderId"`
	Progress      float64            `json:"progress"`
	DisplayStatus models.OrderStatus `json:"displayStatus"`
	StatusText    string             `json:"statusText"`
	Done          bool               `json:"done"`
}

// Simulator advances progress for a single tracked order.
type Simulator struct {
	mu       sync.Mutex
	orderID  string
	progress float64
	status   models.OrderStatus
}

func NewSimulator(orderID string) *Simulator {
	return &Simulator{orderID: orderID, status: models.StatusPlaced}
}

// Tick advances progress by one step. It reports false once progress has
// already reached the end, in which case nothing changes.
func (s *Simulator) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress >= MaxProgress {
		return false
	}
	next := s.progress + Step
	if next > MaxProgress {
		next = MaxProgress
	}
	s.progress = next
	s.status = StatusFor(next)
	return true
}

// Progress is the current value in [0, 100].
func (s *Simulator) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Status is the display status derived from progress.
func (s *Simulator) Status() models.OrderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Done reports whether the simulation reached the end.
func (s *Simulator) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress >= MaxProgress
}

// Frame snapshots the simulator.
func (s *Simulator) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Frame{
		OrderID:       s.orderID,
		Progress:      s.progress,
		DisplayStatus: s.status,
		StatusText:    StatusText(s.status),
		Done:          s.progress >= MaxProgress,
	}
}

// Run ticks every interval until progress reaches the end or ctx is
// cancelled, calling onTick with each new frame. onTick runs on Run's
// goroutine and is never called after Run returns.
func (s *Simulator) Run(ctx context.Context, interval time.Duration, onTick func(Frame)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// cancellation wins over a tick that fired at the same time
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !s.Tick() {
				return nil
			}
			if onTick != nil {
				onTick(s.Frame())
			}
			if s.Done() {
				return nil
			}
		}
	}
}
