package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGet(t *testing.T) {
	s := New(Seed())

	p, err := s.Get("L3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Tusker Lager 500ml" || !p.Price.Equal(decimal.NewFromInt(230)) {
		t.Errorf("product: %+v", p)
	}

	if _, err := s.Get("X999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestListPreservesOrderAndFilters(t *testing.T) {
	s := New(Seed())

	all := s.List("")
	if len(all) != 9 {
		t.Fatalf("all: got %d products, want 9", len(all))
	}
	if all[0].ID != "L1" || all[8].ID != "M2" {
		t.Errorf("order: first %s, last %s", all[0].ID, all[8].ID)
	}

	beers := s.List("Beer")
	if len(beers) != 3 {
		t.Fatalf("beers: got %d, want 3", len(beers))
	}
	for _, p := range beers {
		if p.Category != "Beer" {
			t.Errorf("filter leaked %s (%s)", p.ID, p.Category)
		}
	}

	if got := s.List("Vodka"); len(got) != 0 {
		t.Errorf("unknown category: got %d products, want 0", len(got))
	}
}
