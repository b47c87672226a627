package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukapos/api/internal/cart"
	"github.com/dukapos/api/internal/catalog"
	"github.com/dukapos/api/internal/engine"
	"github.com/go-chi/chi/v5"
)

// CartEngine exposes the business settings a cart needs for totals.
// Satisfied by *engine.Engine.
type CartEngine interface {
	Business() engine.Business
}

// CartHandler handles per-terminal cart sessions. Adding an item goes
// through the catalog lookup; the cart itself never stores product
// data beyond the line snapshot.
type CartHandler struct {
	carts   *cart.Registry
	catalog CatalogStore
	eng     CartEngine
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Registry, cat CatalogStore, eng CartEngine) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat, eng: eng}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
// Expected to be mounted at /carts.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/{cid}", h.Get)
	r.Delete("/{cid}", h.Close)
	r.Post("/{cid}/items", h.AddItem)
	r.Patch("/{cid}/items/{id}", h.UpdateQuantity)
	r.Delete("/{cid}/items/{id}", h.RemoveItem)
}

// --- Request / Response types ---

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

type cartLineResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category"`
}

type cartResponse struct {
	ID       string             `json:"id"`
	Items    []cartLineResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	TaxTotal string             `json:"tax_total"`
	Total    string             `json:"total"`
	Currency string             `json:"currency"`
}

// --- Handlers ---

// Create handles POST /carts and opens a new cart session.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.carts.Create()
	c, _ := h.carts.Get(id)
	writeJSON(w, http.StatusCreated, h.toCartResponse(id, c))
}

// Get handles GET /carts/{cid}.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cid")
	c, ok := h.carts.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return
	}
	writeJSON(w, http.StatusOK, h.toCartResponse(id, c))
}

// Close handles DELETE /carts/{cid}. Idempotent.
func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.carts.Delete(chi.URLParam(r, "cid"))
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /carts/{cid}/items. The product is resolved
// through the catalog; an existing line for the same product gains one
// unit.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cid")
	c, ok := h.carts.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return
	}

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := c.AddItem(cart.CatalogEntry{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
	}); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, h.toCartResponse(id, c))
}

// UpdateQuantity handles PATCH /carts/{cid}/items/{id}. A delta that
// would take the line below quantity 1 removes it.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	c, ok := h.carts.Get(cid)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Delta == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "delta must be non-zero"})
		return
	}

	if err := c.UpdateQuantity(chi.URLParam(r, "id"), req.Delta); err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "line item not found"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, h.toCartResponse(cid, c))
}

// RemoveItem handles DELETE /carts/{cid}/items/{id}. Removing an
// absent line is a no-op.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	c, ok := h.carts.Get(cid)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return
	}

	c.RemoveItem(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.toCartResponse(cid, c))
}

func (h *CartHandler) toCartResponse(id string, c *cart.Cart) cartResponse {
	b := h.eng.Business()
	lines := c.Lines()
	items := make([]cartLineResponse, len(lines))
	for i, l := range lines {
		items[i] = cartLineResponse{
			ID:        l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.String(),
			Quantity:  l.Quantity,
			Category:  l.Category,
		}
	}
	return cartResponse{
		ID:       id,
		Items:    items,
		Subtotal: c.Subtotal().String(),
		TaxTotal: c.TaxTotal(b.TaxRate).String(),
		Total:    c.Total(b.TaxRate).String(),
		Currency: b.Currency,
	}
}
