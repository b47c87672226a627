package engine

import (
	"sync"
	"time"

	"github.com/dukapos/api/internal/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is an immutable snapshot of a cart line at the moment the
// order was placed. Later cart edits never change a placed order.
type OrderItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
}

// Order is one checkout transaction. Total is fixed at creation.
type Order struct {
	ID         string          `json:"id"`
	WaiterID   string          `json:"waiterId"`
	WaiterName string          `json:"waiterName"`
	Items      []OrderItem     `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
}

// clone deep-copies the order so callers can never alias stored items.
func (o Order) clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}

// OrderStore owns the active, completed, and voided order collections.
// An id lives in at most one collection at a time; moves between
// collections are exclusive. Transitions only move forward:
//
//	PENDING ──dispatch──▶ DISPATCHED ──complete──▶ PAID (completed)
//	   │                      │
//	   └───────── void ───────┴──▶ VOID (voided, kept for audit)
//
// PAID is terminal. Safe for concurrent use.
type OrderStore struct {
	mu        sync.RWMutex
	policy    MissingIDPolicy
	active    []Order
	completed []Order
	voided    []Order
}

// NewOrderStore returns an empty store with the given missing-id
// policy.
func NewOrderStore(policy MissingIDPolicy) *OrderStore {
	return &OrderStore{policy: policy}
}

// Create appends a new PENDING order to the active collection and
// returns the stored copy. An empty id gets a generated one. Returns
// ErrDuplicateID if the id exists in any collection, ErrInvalidStatus
// if the supplied status is not PENDING, and ErrNegativeTotal for a
// negative total.
func (s *OrderStore) Create(o Order) (Order, error) {
	if o.Status == "" {
		o.Status = enum.OrderStatusPending
	}
	if o.Status != enum.OrderStatusPending {
		return Order{}, ErrInvalidStatus
	}
	if o.Total.IsNegative() {
		return Order{}, ErrNegativeTotal
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exists(o.ID) {
		return Order{}, ErrDuplicateID
	}
	stored := o.clone()
	s.active = append(s.active, stored)
	return stored.clone(), nil
}

// exists reports whether id is present in any collection; caller must
// hold s.mu.
func (s *OrderStore) exists(id string) bool {
	for _, col := range [][]Order{s.active, s.completed, s.voided} {
		for _, o := range col {
			if o.ID == id {
				return true
			}
		}
	}
	return false
}

// Dispatch marks an active order DISPATCHED in place.
func (s *OrderStore) Dispatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.active {
		if s.active[i].ID == id {
			s.active[i].Status = enum.OrderStatusDispatched
			return nil
		}
	}
	return s.missing()
}

// Complete moves an active order to the completed collection with
// status forced to PAID, preserving id, waiter fields, items, total,
// and the original timestamp. Returns the completed copy. Completing an
// already-completed id changes nothing (the id is no longer active).
func (s *OrderStore) Complete(id string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.active {
		if s.active[i].ID == id {
			done := s.active[i].clone()
			done.Status = enum.OrderStatusPaid
			s.active = append(s.active[:i], s.active[i+1:]...)
			s.completed = append(s.completed, done)
			return done.clone(), nil
		}
	}
	return Order{}, s.missing()
}

// Void moves an active order to the voided collection with status VOID.
// The voided copy is retained so every terminal disposition stays
// auditable; nothing is discarded.
func (s *OrderStore) Void(id string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.active {
		if s.active[i].ID == id {
			gone := s.active[i].clone()
			gone.Status = enum.OrderStatusVoid
			s.active = append(s.active[:i], s.active[i+1:]...)
			s.voided = append(s.voided, gone)
			return gone.clone(), nil
		}
	}
	return Order{}, s.missing()
}

// missing resolves the store's policy for an absent id; caller must
// hold s.mu.
func (s *OrderStore) missing() error {
	if s.policy == IgnoreMissing {
		return nil
	}
	return ErrNotFound
}

// Get looks up an order by id across all collections.
func (s *OrderStore) Get(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, col := range [][]Order{s.active, s.completed, s.voided} {
		for _, o := range col {
			if o.ID == id {
				return o.clone(), true
			}
		}
	}
	return Order{}, false
}

// Active returns copies of the active orders in creation order.
func (s *OrderStore) Active() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.active)
}

// Completed returns copies of the completed orders in completion order.
func (s *OrderStore) Completed() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.completed)
}

// Voided returns copies of the voided orders.
func (s *OrderStore) Voided() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.voided)
}

func cloneAll(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.clone())
	}
	return out
}

// SalesByWaiter folds the completed collection into per-waiter revenue
// totals, keyed by waiter name. Recomputed on every call so the result
// always reflects the current snapshot. Two waiters sharing a name are
// summed together; name, not id, is the reporting key.
func (s *OrderStore) SalesByWaiter() map[string]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales := make(map[string]decimal.Decimal)
	for _, o := range s.completed {
		sales[o.WaiterName] = sales[o.WaiterName].Add(o.Total)
	}
	return sales
}
