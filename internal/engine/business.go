package engine

import (
	"sync"

	"github.com/dukapos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Module is an optional feature flag gated by business type. Modules
// are kept in a fixed display order.
type Module struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Enabled     bool     `json:"enabled"`
	RequiredFor []string `json:"requiredFor"`
}

// requiredBy reports whether the module is required for the given
// business type.
func (m Module) requiredBy(businessType string) bool {
	for _, t := range m.RequiredFor {
		if t == businessType {
			return true
		}
	}
	return false
}

// Business is a read snapshot of the business settings.
type Business struct {
	Name     string
	Type     string
	Currency string
	TaxRate  decimal.Decimal
}

// SettingsUpdate is a partial settings change. Nil fields are left
// untouched. Business type is deliberately absent: it only changes via
// SetBusinessType so the module pass can never be skipped.
type SettingsUpdate struct {
	BusinessName *string
	Currency     *string
	TaxRate      *decimal.Decimal
}

// BusinessConfig owns the business settings and the module sequence.
// One mutex guards both, so a reader never observes a business type
// change without its module activation pass.
type BusinessConfig struct {
	mu       sync.RWMutex
	policy   MissingIDPolicy
	name     string
	btype    string
	currency string
	taxRate  decimal.Decimal
	modules  []Module
}

// NewBusinessConfig returns a config with the given settings and
// modules. The module slice is copied.
func NewBusinessConfig(b Business, modules []Module, policy MissingIDPolicy) *BusinessConfig {
	c := &BusinessConfig{
		policy:   policy,
		name:     b.Name,
		btype:    b.Type,
		currency: b.Currency,
		taxRate:  b.TaxRate,
	}
	c.modules = make([]Module, len(modules))
	copy(c.modules, modules)
	return c
}

// Business returns the current settings.
func (c *BusinessConfig) Business() Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Business{Name: c.name, Type: c.btype, Currency: c.currency, TaxRate: c.taxRate}
}

// Modules returns a copy of the module sequence in display order.
func (c *BusinessConfig) Modules() []Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// SetBusinessType switches the business vertical and immediately
// enables every module required for it. The enable is a one-way
// ratchet: switching types never disables a module, including one
// enabled by an earlier type, and re-applying the same type is
// idempotent. Both the type write and the module pass happen under one
// lock.
func (c *BusinessConfig) SetBusinessType(t string) error {
	if !enum.ValidBusinessType(t) {
		return ErrInvalidBusinessType
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.btype = t
	for i := range c.modules {
		if c.modules[i].requiredBy(t) {
			c.modules[i].Enabled = true
		}
	}
	return nil
}

// ToggleModule flips a module's enabled flag and returns the updated
// module. Toggling is unconstrained: it can disable a module the
// current business type requires, and the engine does not re-enforce
// the requirement until the next SetBusinessType. That looseness is
// kept on purpose; the UI shows "Required for <type>" as a hint only.
func (c *BusinessConfig) ToggleModule(id string) (Module, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.modules {
		if c.modules[i].ID == id {
			c.modules[i].Enabled = !c.modules[i].Enabled
			return c.modules[i], nil
		}
	}
	if c.policy == IgnoreMissing {
		return Module{}, nil
	}
	return Module{}, ErrNotFound
}

// UpdateSettings merges a partial settings change. Modules and business
// type are never touched here.
func (c *BusinessConfig) UpdateSettings(u SettingsUpdate) error {
	if u.TaxRate != nil {
		if u.TaxRate.IsNegative() || u.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
			return ErrInvalidTaxRate
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if u.BusinessName != nil {
		c.name = *u.BusinessName
	}
	if u.Currency != nil {
		c.currency = *u.Currency
	}
	if u.TaxRate != nil {
		c.taxRate = *u.TaxRate
	}
	return nil
}
