package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func entry(id, name string, price int64, category string) CatalogEntry {
	return CatalogEntry{ID: id, Name: name, Price: decimal.NewFromInt(price), Category: category}
}

func mustAdd(t *testing.T, c *Cart, e CatalogEntry) {
	t.Helper()
	if err := c.AddItem(e); err != nil {
		t.Fatalf("add %s: %v", e.ID, err)
	}
}

func TestAddItemNewAndRepeat(t *testing.T) {
	c := New()
	mustAdd(t, c, entry("L3", "Tusker Lager 500ml", 230, "Beer"))
	mustAdd(t, c, entry("L3", "Tusker Lager 500ml", 230, "Beer"))
	mustAdd(t, c, entry("M1", "Coca Cola 1.25L", 140, "Mixers"))

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(lines))
	}
	if lines[0].ID != "L3" || lines[0].Quantity != 2 {
		t.Errorf("line 0: got %s x%d, want L3 x2", lines[0].ID, lines[0].Quantity)
	}
	if lines[1].ID != "M1" || lines[1].Quantity != 1 {
		t.Errorf("line 1: got %s x%d, want M1 x1", lines[1].ID, lines[1].Quantity)
	}
}

func TestAddItemRejectsNegativePrice(t *testing.T) {
	c := New()
	err := c.AddItem(CatalogEntry{ID: "X", Price: decimal.NewFromInt(-5)})
	if !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("error: got %v, want ErrNegativePrice", err)
	}
	if len(c.Lines()) != 0 {
		t.Error("cart should remain empty")
	}
}

func TestTaxRounding(t *testing.T) {
	// One Tusker at 230, 16% VAT: tax 36.8 rounds to 37, total 267.
	c := New()
	mustAdd(t, c, entry("L3", "Tusker Lager 500ml", 230, "Beer"))
	rate := decimal.NewFromInt(16)

	if got := c.Subtotal(); !got.Equal(decimal.NewFromInt(230)) {
		t.Errorf("subtotal: got %s, want 230", got)
	}
	if got := c.TaxTotal(rate); !got.Equal(decimal.NewFromInt(37)) {
		t.Errorf("tax total: got %s, want 37", got)
	}
	if got := c.Total(rate); !got.Equal(decimal.NewFromInt(267)) {
		t.Errorf("total: got %s, want 267", got)
	}
}

func TestTotalInvariantUnderMutation(t *testing.T) {
	c := New()
	rate := decimal.NewFromInt(16)

	check := func(step string) {
		t.Helper()
		sub := c.Subtotal()
		tax := c.TaxTotal(rate)
		total := c.Total(rate)
		if !total.Equal(sub.Add(tax)) {
			t.Errorf("%s: total %s != subtotal %s + tax %s", step, total, sub, tax)
		}
		if sub.IsNegative() || tax.IsNegative() || total.IsNegative() {
			t.Errorf("%s: negative money: sub=%s tax=%s total=%s", step, sub, tax, total)
		}
	}

	check("empty")
	mustAdd(t, c, entry("L1", "Johnnie Walker Black 750ml", 4200, "Whiskey"))
	check("after add L1")
	mustAdd(t, c, entry("L3", "Tusker Lager 500ml", 230, "Beer"))
	check("after add L3")
	if err := c.UpdateQuantity("L3", 5); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	check("after +5 L3")
	if err := c.UpdateQuantity("L3", -2); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	check("after -2 L3")
	c.RemoveItem("L1")
	check("after remove L1")
	c.Clear()
	check("after clear")
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	// Policy: decrementing a quantity-1 line removes it rather than
	// clamping.
	c := New()
	mustAdd(t, c, entry("L3", "Tusker Lager 500ml", 230, "Beer"))

	if err := c.UpdateQuantity("L3", -1); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(c.Lines()) != 0 {
		t.Fatal("line should have been removed when quantity dropped below 1")
	}
	if !c.Subtotal().IsZero() {
		t.Errorf("subtotal: got %s, want 0", c.Subtotal())
	}
}

func TestUpdateQuantityUnknownID(t *testing.T) {
	c := New()
	if err := c.UpdateQuantity("nope", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	c := New()
	mustAdd(t, c, entry("L3", "Tusker Lager 500ml", 230, "Beer"))

	c.RemoveItem("L3")
	c.RemoveItem("L3") // second remove is a no-op
	c.RemoveItem("never-existed")

	if len(c.Lines()) != 0 {
		t.Error("cart should be empty")
	}
}

func TestClearIdempotent(t *testing.T) {
	c := New()
	mustAdd(t, c, entry("L3", "Tusker Lager 500ml", 230, "Beer"))
	c.Clear()
	c.Clear()
	if len(c.Lines()) != 0 || !c.Subtotal().IsZero() {
		t.Error("cart should be empty after clear")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := New()
	ids := []string{"L5", "L1", "M2", "L3"}
	for _, id := range ids {
		mustAdd(t, c, entry(id, id, 100, "Misc"))
	}
	// Re-adding an existing item must not move it.
	mustAdd(t, c, entry("L1", "L1", 100, "Misc"))

	lines := c.Lines()
	for i, id := range ids {
		if lines[i].ID != id {
			t.Errorf("line %d: got %s, want %s", i, lines[i].ID, id)
		}
	}
}

func TestZeroTaxRate(t *testing.T) {
	c := New()
	mustAdd(t, c, entry("M2", "Schweppes Tonic 500ml", 90, "Mixers"))
	rate := decimal.Zero

	if got := c.TaxTotal(rate); !got.IsZero() {
		t.Errorf("tax total: got %s, want 0", got)
	}
	if got := c.Total(rate); !got.Equal(c.Subtotal()) {
		t.Errorf("total: got %s, want %s", got, c.Subtotal())
	}
}
