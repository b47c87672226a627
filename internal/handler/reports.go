package handler

import (
	"net/http"
	"sort"

	"github.com/dukapos/api/internal/engine"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ReportsEngine defines the engine methods needed by report handlers.
// Satisfied by *engine.Engine.
type ReportsEngine interface {
	SalesByWaiter() map[string]decimal.Decimal
	CompletedOrders() []engine.Order
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	eng ReportsEngine
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(eng ReportsEngine) *ReportsHandler {
	return &ReportsHandler{eng: eng}
}

// RegisterRoutes registers report endpoints on the given Chi router.
// Expected to be mounted at /reports.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales-by-waiter", h.SalesByWaiter)
}

// --- Response types ---

type waiterSalesResponse struct {
	WaiterName string `json:"waiter_name"`
	TotalSales string `json:"total_sales"`
	OrderCount int    `json:"order_count"`
}

// --- Handlers ---

// SalesByWaiter returns revenue per waiter over completed orders,
// sorted by waiter name for stable output. Waiters are grouped by
// name: two staff sharing a display name are reported as one row.
func (h *ReportsHandler) SalesByWaiter(w http.ResponseWriter, r *http.Request) {
	sales := h.eng.SalesByWaiter()

	counts := make(map[string]int)
	for _, o := range h.eng.CompletedOrders() {
		counts[o.WaiterName]++
	}

	names := make([]string, 0, len(sales))
	for name := range sales {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]waiterSalesResponse, 0, len(names))
	for _, name := range names {
		out = append(out, waiterSalesResponse{
			WaiterName: name,
			TotalSales: sales[name].String(),
			OrderCount: counts[name],
		})
	}
	writeJSON(w, http.StatusOK, out)
}
