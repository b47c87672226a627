package handler

import (
	"errors"
	"net/http"

	"github.com/dukapos/api/internal/catalog"
	"github.com/go-chi/chi/v5"
)

// CatalogStore defines the catalog methods needed by handlers.
// Satisfied by *catalog.Store.
type CatalogStore interface {
	Get(id string) (catalog.Product, error)
	List(category string) []catalog.Product
}

// CatalogHandler handles product catalog endpoints.
type CatalogHandler struct {
	store CatalogStore
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store CatalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
// Expected to be mounted at /catalog.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

type productResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	Volume   string `json:"volume,omitempty"`
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.String(),
		Category: p.Category,
		Stock:    p.Stock,
		Volume:   p.Volume,
	}
}

// List handles GET /catalog, optionally filtered with ?category=.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.store.List(r.URL.Query().Get("category"))
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /catalog/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}
