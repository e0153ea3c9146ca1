package cart

import (
	"fmt"
	"math"
	"testing"
	"time"

	"dashmart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAddTwiceIncrementsQuantity(t *testing.T) {
	c := New()
	p := models.Product{ID: "1", Name: "Mango", Price: 10, Stock: 2}

	c.Add(p)
	c.Add(p)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 20.0, c.Total())
	assert.Equal(t, 2, c.Count())
}

func TestAddZeroStockIsNoop(t *testing.T) {
	c := New()
	c.Add(models.Product{ID: "1", Price: 10, Stock: 0})
	assert.Empty(t, c.Items())
	assert.Zero(t, c.Total())
}

func TestAddCapturesPriceSnapshot(t *testing.T) {
	c := New()
	p := models.Product{ID: "1", Price: 10, Stock: 5}
	c.Add(p)

	p.Price = 50
	c.Add(p)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10.0, items[0].Price)
	assert.Equal(t, 20.0, c.Total())
}

func TestSetQuantityRemovesAtZero(t *testing.T) {
	c := New()
	c.Add(models.Product{ID: "1", Price: 2, Stock: 5})
	c.Add(models.Product{ID: "2", Price: 3, Stock: 5})

	c.SetQuantity("1", 2)
	assert.Equal(t, 3, c.Items()[0].Quantity)

	c.SetQuantity("1", -10)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)

	c.SetQuantity("ghost", 4)
	assert.Len(t, c.Items(), 1)
}

func TestSetQuantitySaturates(t *testing.T) {
	c := New()
	c.Add(models.Product{ID: "1", Price: 2, Stock: 5})

	c.SetQuantity("1", math.MaxInt)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, math.MaxInt, items[0].Quantity)

	c.Add(models.Product{ID: "1", Price: 2, Stock: 5})
	c.Add(models.Product{ID: "2", Price: 1, Stock: 5})
	assert.Equal(t, math.MaxInt, c.Items()[0].Quantity)
	assert.Equal(t, math.MaxInt, c.Count())
	assert.Positive(t, c.Total())
}

func TestClearAndDrain(t *testing.T) {
	c := New()
	c.Add(models.Product{ID: "1", Price: 2, Stock: 5})
	c.Clear()
	assert.Empty(t, c.Items())

	c.Add(models.Product{ID: "1", Price: 2, Stock: 5})
	drained := c.Drain()
	assert.Len(t, drained, 1)
	assert.Empty(t, c.Items())

	c.Restore(drained)
	assert.Equal(t, 2.0, c.Total())
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewSessions()
	s.Get("a").Add(models.Product{ID: "1", Price: 1, Stock: 1})

	assert.Equal(t, 1, s.Get("a").Count())
	assert.Zero(t, s.Get("b").Count())
	assert.Same(t, s.Get("a"), s.Get("a"))
	assert.Equal(t, 2, s.Len())

	_, ok := s.Lookup("c")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestSessionsSweepDropsIdleCarts(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := NewSessions()
	s.now = func() time.Time { return now }

	s.Get("old")
	now = now.Add(30 * time.Minute)
	s.Get("fresh")
	now = now.Add(45 * time.Minute)

	s.Sweep(time.Hour)
	_, ok := s.Lookup("old")
	assert.False(t, ok)
	_, ok = s.Lookup("fresh")
	assert.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

// Any sequence of adds and quantity changes keeps the total equal to the
// sum of lines and never leaves a non-positive quantity behind.
func TestCartInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		products := make([]models.Product, 4)
		for i := range products {
			products[i] = models.Product{
				ID:    fmt.Sprintf("p%d", i),
				Price: float64(rapid.IntRange(0, 5000).Draw(t, "cents")) / 100,
				Stock: rapid.IntRange(0, 3).Draw(t, "stock"),
			}
		}

		c := New()
		steps := rapid.IntRange(0, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			p := rapid.SampledFrom(products).Draw(t, "product")
			if rapid.Bool().Draw(t, "add") {
				c.Add(p)
			} else {
				c.SetQuantity(p.ID, rapid.IntRange(-4, 4).Draw(t, "delta"))
			}

			var want float64
			seen := map[string]bool{}
			for _, item := range c.Items() {
				if item.Quantity <= 0 {
					t.Fatalf("entry %s has quantity %d", item.ID, item.Quantity)
				}
				if item.Stock <= 0 {
					t.Fatalf("zero-stock product %s entered the cart", item.ID)
				}
				if seen[item.ID] {
					t.Fatalf("duplicate entry %s", item.ID)
				}
				seen[item.ID] = true
				want += item.Price * float64(item.Quantity)
			}
			if got := c.Total(); math.Abs(got-want) > 1e-9 {
				t.Fatalf("total %v, want %v", got, want)
			}
		}

		c.Drain()
		if len(c.Items()) != 0 || c.Total() != 0 {
			t.Fatalf("cart not empty after drain")
		}
	})
}
