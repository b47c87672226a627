// Package engine implements the order and business-configuration core
// behind the POS screens: business settings with their feature-module
// matrix, the order lifecycle collections, and per-waiter sales
// aggregation. The engine is an explicitly owned object handed to its
// callers; there is no package-level state.
package engine

import "github.com/shopspring/decimal"

// Snapshot is the unified persisted shape of the whole engine. It is
// the union of the two store schemas the original frontend persisted
// under one storage key (one centered on orders and reporting, one on
// modules), plus the retained voided orders.
type Snapshot struct {
	BusinessName    string          `json:"businessName"`
	BusinessType    string          `json:"businessType"`
	Currency        string          `json:"currency"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Modules         []Module        `json:"modules"`
	ActiveOrders    []Order         `json:"activeOrders"`
	CompletedOrders []Order         `json:"completedOrders"`
	VoidedOrders    []Order         `json:"voidedOrders"`
}

// Engine bundles the business config and the order store and notifies
// an optional observer after every successful mutation, so the caller
// can serialize-on-change. Lifecycle: initialize from a snapshot (or
// defaults), serve mutations, persist each change.
type Engine struct {
	cfg      *BusinessConfig
	orders   *OrderStore
	onChange func(Snapshot)
}

// Options configures a new engine.
type Options struct {
	// MissingIDs controls unknown-id handling for lifecycle and module
	// operations. Zero value is RejectMissing.
	MissingIDs MissingIDPolicy
}

// New returns an engine with the default business settings and module
// matrix.
func New(opts Options) *Engine {
	return &Engine{
		cfg:    NewBusinessConfig(DefaultBusiness(), DefaultModules(), opts.MissingIDs),
		orders: NewOrderStore(opts.MissingIDs),
	}
}

// NewFromSnapshot restores an engine from a persisted snapshot.
func NewFromSnapshot(s Snapshot, opts Options) *Engine {
	e := &Engine{
		cfg: NewBusinessConfig(Business{
			Name:     s.BusinessName,
			Type:     s.BusinessType,
			Currency: s.Currency,
			TaxRate:  s.TaxRate,
		}, s.Modules, opts.MissingIDs),
		orders: NewOrderStore(opts.MissingIDs),
	}
	e.orders.active = cloneAll(s.ActiveOrders)
	e.orders.completed = cloneAll(s.CompletedOrders)
	e.orders.voided = cloneAll(s.VoidedOrders)
	return e
}

// SetOnChange registers the observer called with a fresh snapshot after
// every successful mutation. Must be set before the engine starts
// serving; the callback runs on the mutating goroutine.
func (e *Engine) SetOnChange(fn func(Snapshot)) {
	e.onChange = fn
}

// Snapshot captures the engine's current persisted shape.
func (e *Engine) Snapshot() Snapshot {
	b := e.cfg.Business()
	return Snapshot{
		BusinessName:    b.Name,
		BusinessType:    b.Type,
		Currency:        b.Currency,
		TaxRate:         b.TaxRate,
		Modules:         e.cfg.Modules(),
		ActiveOrders:    e.orders.Active(),
		CompletedOrders: e.orders.Completed(),
		VoidedOrders:    e.orders.Voided(),
	}
}

func (e *Engine) notify() {
	if e.onChange != nil {
		e.onChange(e.Snapshot())
	}
}

// --- Business configuration ---

// Business returns the current business settings.
func (e *Engine) Business() Business { return e.cfg.Business() }

// Modules returns the module sequence in display order.
func (e *Engine) Modules() []Module { return e.cfg.Modules() }

// SetBusinessType switches the vertical and runs the module activation
// pass. See BusinessConfig.SetBusinessType.
func (e *Engine) SetBusinessType(t string) error {
	if err := e.cfg.SetBusinessType(t); err != nil {
		return err
	}
	e.notify()
	return nil
}

// ToggleModule flips a module's enabled flag.
func (e *Engine) ToggleModule(id string) (Module, error) {
	m, err := e.cfg.ToggleModule(id)
	if err != nil {
		return Module{}, err
	}
	e.notify()
	return m, nil
}

// UpdateSettings merges a partial settings change.
func (e *Engine) UpdateSettings(u SettingsUpdate) error {
	if err := e.cfg.UpdateSettings(u); err != nil {
		return err
	}
	e.notify()
	return nil
}

// --- Order lifecycle ---

// CreateOrder appends a new PENDING order.
func (e *Engine) CreateOrder(o Order) (Order, error) {
	stored, err := e.orders.Create(o)
	if err != nil {
		return Order{}, err
	}
	e.notify()
	return stored, nil
}

// DispatchOrder marks an active order DISPATCHED.
func (e *Engine) DispatchOrder(id string) error {
	if err := e.orders.Dispatch(id); err != nil {
		return err
	}
	e.notify()
	return nil
}

// CompleteOrder moves an active order to the completed collection as
// PAID and returns the completed copy.
func (e *Engine) CompleteOrder(id string) (Order, error) {
	done, err := e.orders.Complete(id)
	if err != nil {
		return Order{}, err
	}
	e.notify()
	return done, nil
}

// VoidOrder moves an active order to the voided audit collection.
func (e *Engine) VoidOrder(id string) (Order, error) {
	gone, err := e.orders.Void(id)
	if err != nil {
		return Order{}, err
	}
	e.notify()
	return gone, nil
}

// GetOrder looks up an order by id across all collections.
func (e *Engine) GetOrder(id string) (Order, bool) { return e.orders.Get(id) }

// ActiveOrders returns the active collection.
func (e *Engine) ActiveOrders() []Order { return e.orders.Active() }

// CompletedOrders returns the completed collection.
func (e *Engine) CompletedOrders() []Order { return e.orders.Completed() }

// VoidedOrders returns the voided audit collection.
func (e *Engine) VoidedOrders() []Order { return e.orders.Voided() }

// SalesByWaiter returns per-waiter revenue over completed orders.
func (e *Engine) SalesByWaiter() map[string]decimal.Decimal {
	return e.orders.SalesByWaiter()
}
