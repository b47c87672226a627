package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// Errors returned by cart operations.
var (
	ErrNotFound      = errors.New("line item not found")
	ErrNegativePrice = errors.New("unit price must not be negative")
)

// minorUnitExp is the decimal exponent totals are rounded to. Shelf
// prices here are whole shillings, so tax rounds to a whole amount
// (230 at 16% gives tax 36.8, charged as 37).
const minorUnitExp = 0

// CatalogEntry is the external catalog's view of a sellable product.
// The cart only needs id, display name, unit price, and category.
type CatalogEntry struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
}

// LineItem is a single cart line. Quantity is always >= 1; a line that
// would drop below 1 is removed instead (see UpdateQuantity).
type LineItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
}

// Cart aggregates line items for one checkout session. Insertion order
// is preserved for display; it has no effect on totals. Safe for
// concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines map[string]*LineItem
	order []string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[string]*LineItem)}
}

// AddItem adds one unit of the given catalog entry. If a line with the
// same id already exists its quantity is incremented by 1, otherwise a
// new line with quantity 1 is appended.
func (c *Cart) AddItem(entry CatalogEntry) error {
	if entry.Price.IsNegative() {
		return ErrNegativePrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[entry.ID]; ok {
		line.Quantity++
		return nil
	}
	c.lines[entry.ID] = &LineItem{
		ID:        entry.ID,
		Name:      entry.Name,
		UnitPrice: entry.Price,
		Quantity:  1,
		Category:  entry.Category,
	}
	c.order = append(c.order, entry.ID)
	return nil
}

// UpdateQuantity adds delta (typically +1 or -1) to a line's quantity.
// Quantities never go below 1: a delta that would take the line below 1
// removes it entirely, mirroring the minus-button flow at the till.
// Returns ErrNotFound for an unknown id.
func (c *Cart) UpdateQuantity(id string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[id]
	if !ok {
		return ErrNotFound
	}

	line.Quantity += delta
	if line.Quantity < 1 {
		c.remove(id)
	}
	return nil
}

// RemoveItem deletes a line regardless of quantity. Removing an absent
// id is a no-op.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(id)
}

// remove deletes a line; caller must hold c.mu.
func (c *Cart) remove(id string) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	for i, lid := range c.order {
		if lid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]*LineItem)
	c.order = nil
}

// Lines returns copies of the cart's lines in insertion order.
func (c *Cart) Lines() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Subtotal is the sum of unitPrice × quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotal()
}

func (c *Cart) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, id := range c.order {
		line := c.lines[id]
		sum = sum.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// TaxTotal is subtotal × taxRate / 100, rounded half-up to the
// currency minor unit. taxRate is a percentage in [0, 100].
func (c *Cart) TaxTotal(taxRate decimal.Decimal) decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return taxOn(c.subtotal(), taxRate)
}

// Total is subtotal + taxTotal. The invariant
// Total == Subtotal + TaxTotal holds after every mutation.
func (c *Cart) Total(taxRate decimal.Decimal) decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := c.subtotal()
	return sub.Add(taxOn(sub, taxRate))
}

// taxOn computes the rounded tax amount on a subtotal.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts that can occur here.
func taxOn(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(minorUnitExp)
}
