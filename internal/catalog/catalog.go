// Package catalog is the product lookup collaborator the cart consumes
// when adding items. The engine core never depends on it.
package catalog

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product id is not in the catalog.
var ErrNotFound = errors.New("product not found")

// Product is a sellable catalog entry.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	Volume   string          `json:"volume,omitempty"`
}

// Store is an in-memory product catalog. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	products []Product
	index    map[string]int
}

// New creates a catalog from the given products, preserving order.
func New(products []Product) *Store {
	s := &Store{
		products: make([]Product, len(products)),
		index:    make(map[string]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		s.index[p.ID] = i
	}
	return s
}

// Get looks a product up by id.
func (s *Store) Get(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return s.products[i], nil
}

// List returns products, optionally filtered by category. Empty
// category means all.
func (s *Store) List(category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Seed is the stock liquor price list the demo frontend ships with.
func Seed() []Product {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []Product{
		{ID: "L1", Name: "Johnnie Walker Black 750ml", Price: price(4200), Category: "Whiskey", Stock: 24, Volume: "750ml"},
		{ID: "L2", Name: "Gilbeys Gin 750ml", Price: price(1450), Category: "Gin", Stock: 112, Volume: "750ml"},
		{ID: "L3", Name: "Tusker Lager 500ml", Price: price(230), Category: "Beer", Stock: 450, Volume: "500ml"},
		{ID: "L4", Name: "White Cap 500ml", Price: price(240), Category: "Beer", Stock: 320, Volume: "500ml"},
		{ID: "L5", Name: "Hennessy VS 700ml", Price: price(6800), Category: "Cognac", Stock: 12, Volume: "700ml"},
		{ID: "L6", Name: "Guinness 500ml", Price: price(250), Category: "Beer", Stock: 180, Volume: "500ml"},
		{ID: "L7", Name: "Jameson Irish 750ml", Price: price(3200), Category: "Whiskey", Stock: 48, Volume: "750ml"},
		{ID: "M1", Name: "Coca Cola 1.25L", Price: price(140), Category: "Mixers", Stock: 80, Volume: "1.25L"},
		{ID: "M2", Name: "Schweppes Tonic 500ml", Price: price(90), Category: "Mixers", Stock: 65, Volume: "500ml"},
	}
}
