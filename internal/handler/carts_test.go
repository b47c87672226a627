package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukapos/api/internal/cart"
	"github.com/dukapos/api/internal/catalog"
	"github.com/dukapos/api/internal/engine"
	"github.com/dukapos/api/internal/handler"
	"github.com/go-chi/chi/v5"
)

type cartBody struct {
	ID    string `json:"id"`
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Subtotal string `json:"subtotal"`
	TaxTotal string `json:"tax_total"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

func newCartServer(t *testing.T) *chi.Mux {
	t.Helper()
	cat := catalog.New(catalog.Seed())
	h := handler.NewCartHandler(cart.NewRegistry(), cat, engine.New(engine.Options{}))
	r := chi.NewRouter()
	r.Route("/carts", h.RegisterRoutes)
	return r
}

func openCart(t *testing.T, r *chi.Mux) string {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "POST", "/carts", nil, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create cart: got %d", rr.Code)
	}
	var resp cartBody
	decodeJSON(t, rr, &resp)
	if resp.ID == "" {
		t.Fatal("cart id missing")
	}
	return resp.ID
}

func addProduct(t *testing.T, r *chi.Mux, cid, productID string) cartBody {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "POST", "/carts/"+cid+"/items", map[string]string{"product_id": productID}, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("add %s: got %d, body %s", productID, rr.Code, rr.Body)
	}
	var resp cartBody
	decodeJSON(t, rr, &resp)
	return resp
}

func TestCartTotalsWithTax(t *testing.T) {
	r := newCartServer(t)
	cid := openCart(t, r)

	// One Tusker at 230 with the default 16% rate.
	resp := addProduct(t, r, cid, "L3")
	if resp.Subtotal != "230" {
		t.Errorf("subtotal: got %s, want 230", resp.Subtotal)
	}
	if resp.TaxTotal != "37" {
		t.Errorf("tax: got %s, want 37", resp.TaxTotal)
	}
	if resp.Total != "267" {
		t.Errorf("total: got %s, want 267", resp.Total)
	}
	if resp.Currency != "KES" {
		t.Errorf("currency: got %s, want KES", resp.Currency)
	}
}

func TestAddSameProductTwiceBumpsQuantity(t *testing.T) {
	r := newCartServer(t)
	cid := openCart(t, r)

	addProduct(t, r, cid, "L3")
	resp := addProduct(t, r, cid, "L3")

	if len(resp.Items) != 1 {
		t.Fatalf("lines: got %d, want 1", len(resp.Items))
	}
	if resp.Items[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want 2", resp.Items[0].Quantity)
	}
	if resp.Subtotal != "460" {
		t.Errorf("subtotal: got %s, want 460", resp.Subtotal)
	}
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	r := newCartServer(t)
	cid := openCart(t, r)
	addProduct(t, r, cid, "L3")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "PATCH", "/carts/"+cid+"/items/L3", map[string]int{"delta": -1}, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body)
	}

	var resp cartBody
	decodeJSON(t, rr, &resp)
	if len(resp.Items) != 0 {
		t.Errorf("lines: got %d, want 0", len(resp.Items))
	}
	if resp.Total != "0" {
		t.Errorf("total: got %s, want 0", resp.Total)
	}
}

func TestUpdateQuantityValidation(t *testing.T) {
	r := newCartServer(t)
	cid := openCart(t, r)
	addProduct(t, r, cid, "L3")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "PATCH", "/carts/"+cid+"/items/L3", map[string]int{"delta": 0}, nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("zero delta: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "PATCH", "/carts/"+cid+"/items/UNKNOWN", map[string]int{"delta": 1}, nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown line: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	r := newCartServer(t)
	cid := openCart(t, r)
	addProduct(t, r, cid, "L3")

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, newRequest(t, "DELETE", "/carts/"+cid+"/items/L3", nil, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("remove attempt %d: got %d", i+1, rr.Code)
		}
	}
}

func TestAddUnknownProduct(t *testing.T) {
	r := newCartServer(t)
	cid := openCart(t, r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "POST", "/carts/"+cid+"/items", map[string]string{"product_id": "X999"}, nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCartSessionLifecycle(t *testing.T) {
	r := newCartServer(t)
	cid := openCart(t, r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "DELETE", "/carts/"+cid, nil, nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("close: got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, newRequest(t, "GET", "/carts/"+cid, nil, nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after close: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}
