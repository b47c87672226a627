package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dukapos/api/internal/engine"
	"github.com/dukapos/api/internal/enum"
	"github.com/dukapos/api/internal/middleware"
	"github.com/dukapos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// OrderEngine defines the engine methods needed by order handlers.
// Satisfied by *engine.Engine; narrow interface for testability.
type OrderEngine interface {
	CreateOrder(o engine.Order) (engine.Order, error)
	DispatchOrder(id string) error
	VoidOrder(id string) (engine.Order, error)
	GetOrder(id string) (engine.Order, bool)
	ActiveOrders() []engine.Order
	CompletedOrders() []engine.Order
	VoidedOrders() []engine.Order
	Business() engine.Business
}

// OrderHandler handles order lifecycle endpoints.
type OrderHandler struct {
	eng OrderEngine
	hub Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(eng OrderEngine, hub Broadcaster) *OrderHandler {
	return &OrderHandler{eng: eng, hub: hub}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/dispatch", h.Dispatch)
	r.Delete("/{id}", h.Void)
}

// --- Request / Response types ---

type createOrderItemRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category"`
}

type createOrderRequest struct {
	ID    string                   `json:"id"`
	Items []createOrderItemRequest `json:"items"`
	// Total is optional; when absent it is computed from the items plus
	// the configured tax rate.
	Total string `json:"total"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
}

// --- Handlers ---

// Create handles POST /orders. The waiter on the order is always the
// authenticated caller; the till cannot place orders for someone else.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}

	items := make([]engine.OrderItem, len(req.Items))
	subtotal := decimal.Zero
	for i, it := range req.Items {
		if it.Quantity < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity must be >= 1"})
			return
		}
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil || price.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid unit_price"})
			return
		}
		items[i] = engine.OrderItem{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: price,
			Quantity:  it.Quantity,
			Category:  it.Category,
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	var total decimal.Decimal
	if req.Total != "" {
		t, err := decimal.NewFromString(req.Total)
		if err != nil || t.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid total"})
			return
		}
		total = t
	} else {
		rate := h.eng.Business().TaxRate
		tax := subtotal.Mul(rate).Div(decimal.NewFromInt(100)).Round(0)
		total = subtotal.Add(tax)
	}

	order, err := h.eng.CreateOrder(engine.Order{
		ID:         req.ID,
		WaiterID:   claims.UserID.String(),
		WaiterName: claims.Name,
		Items:      items,
		Total:      total,
		Status:     enum.OrderStatusPending,
	})
	if err != nil {
		if errors.Is(err, engine.ErrDuplicateID) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		if errors.Is(err, engine.ErrInvalidStatus) || errors.Is(err, engine.ErrNegativeTotal) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toOrderResponse(order)
	h.hub.Broadcast(ws.NewEvent("order.created", resp))
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /orders. The state query param selects the
// collection: active (default), completed, or voided.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var orders []engine.Order
	switch state := r.URL.Query().Get("state"); state {
	case "", "active":
		orders = h.eng.ActiveOrders()
	case "completed":
		orders = h.eng.CompletedOrders()
	case "voided":
		orders = h.eng.VoidedOrders()
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "state must be active, completed, or voided"})
		return
	}

	writeJSON(w, http.StatusOK, orderListResponse{Orders: toOrderResponses(orders)})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, ok := h.eng.GetOrder(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Dispatch handles POST /orders/{id}/dispatch.
func (h *OrderHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.eng.DispatchOrder(id); err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: dispatch order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	order, _ := h.eng.GetOrder(id)
	resp := toOrderResponse(order)
	h.hub.Broadcast(ws.NewEvent("order.dispatched", resp))
	writeJSON(w, http.StatusOK, resp)
}

// Void handles DELETE /orders/{id}. The order moves to the voided
// audit collection; it is never discarded.
func (h *OrderHandler) Void(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.eng.VoidOrder(id)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: void order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toOrderResponse(order)
	h.hub.Broadcast(ws.NewEvent("order.voided", resp))
	writeJSON(w, http.StatusOK, resp)
}
