// Package catalog owns the product list and its stock levels.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"dashmart/models"
)

// ErrNotFound is returned for an unknown product id.
var ErrNotFound = errors.New("product not found")

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Text       string
	CategoryID string
}

// Deduction is one line of a checkout's stock movement.
type Deduction struct {
	ProductID string
	Quantity  int
}

// Store holds products in seed order. Writes replace the stored value
// rather than mutating a shared one, so snapshots handed out stay stable.
type Store struct {
	mu         sync.RWMutex
	products   []models.Product
	index      map[string]int
	categories map[string]models.Category

	categoryOrder []models.Category
}

// NewStore copies products and categories into a fresh store.
func NewStore(products []models.Product, categories []models.Category) *Store {
	s := &Store{
		products:   make([]models.Product, len(products)),
		index:      make(map[string]int, len(products)),
		categories: make(map[string]models.Category, len(categories)),

		categoryOrder: append([]models.Category(nil), categories...),
	}
	copy(s.products, products)
	for i, p := range s.products {
		s.index[p.ID] = i
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

// NewSeeded returns a store loaded with the fixed demo catalog.
func NewSeeded() *Store {
	return NewStore(SeedProducts, Categories)
}

// List returns every product matching f, in catalog order.
func (s *Store) List(f Filter) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text := strings.ToLower(f.Text)
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if f.CategoryID != "" && p.Category != f.CategoryID {
			continue
		}
		if text != "" && !s.matchesText(p, text) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesText checks the name, the category id and the category display name.
func (s *Store) matchesText(p models.Product, text string) bool {
	if strings.Contains(strings.ToLower(p.Name), text) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), text) {
		return true
	}
	if c, ok := s.categories[p.Category]; ok && strings.Contains(strings.ToLower(c.Name), text) {
		return true
	}
	return false
}

// Get returns a copy of one product.
func (s *Store) Get(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.products[i], nil
}

// Snapshot returns a copy of the whole catalog.
func (s *Store) Snapshot() []models.Product {
	return s.List(Filter{})
}

// CategoryList returns the known categories in display order.
func (s *Store) CategoryList() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categoryOrder...)
}

// DeductStock lowers a product's stock by quantity, never below zero.
// Over-deduction is capped silently.
func (s *Store) DeductStock(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, productID)
	}
	s.deductAt(i, quantity)
	return nil
}

// DeductAll applies every deduction or none of them.
func (s *Store) DeductAll(lines []Deduction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range lines {
		if _, ok := s.index[l.ProductID]; !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, l.ProductID)
		}
	}
	for _, l := range lines {
		s.deductAt(s.index[l.ProductID], l.Quantity)
	}
	return nil
}

func (s *Store) deductAt(i, quantity int) {
	if quantity <= 0 {
		return
	}
	p := s.products[i]
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	s.products[i] = p
}

// SetPrice changes the list price. Carts and orders keep the price they
// captured.
func (s *Store) SetPrice(productID string, price float64) (models.Product, error) {
	if price < 0 {
		return models.Product{}, errors.New("price must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrNotFound, productID)
	}
	p := s.products[i]
	p.Price = price
	s.products[i] = p
	return p, nil
}
