package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dukapos/api/internal/engine"
	"github.com/dukapos/api/internal/enum"
	"github.com/dukapos/api/internal/payment"
	"github.com/dukapos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// PaymentEngine defines the engine methods needed by payment handlers.
// Satisfied by *engine.Engine.
type PaymentEngine interface {
	GetOrder(id string) (engine.Order, bool)
	CompleteOrder(id string) (engine.Order, error)
}

// PaymentHandler handles payment capture for an order. The gateway is
// an opaque collaborator: it is invoked with a method and an amount and
// either succeeds or fails; on success the order is completed.
type PaymentHandler struct {
	eng PaymentEngine
	gw  payment.Gateway
	hub Broadcaster
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(eng PaymentEngine, gw payment.Gateway, hub Broadcaster) *PaymentHandler {
	return &PaymentHandler{eng: eng, gw: gw, hub: hub}
}

// RegisterRoutes registers payment endpoints on the given Chi router.
// Expected to be mounted at /orders/{id}/payments.
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Add)
}

// --- Request / Response types ---

type addPaymentRequest struct {
	PaymentMethod  string `json:"payment_method"`
	AmountReceived string `json:"amount_received"`
}

type paymentResponse struct {
	OrderID       string        `json:"order_id"`
	PaymentMethod string        `json:"payment_method"`
	Amount        string        `json:"amount"`
	Reference     string        `json:"reference"`
	ChangeAmount  string        `json:"change_amount,omitempty"`
	Order         orderResponse `json:"order"`
}

// --- Handlers ---

// Add handles POST /orders/{id}/payments. The captured amount is the
// order total; a CASH payment may report the amount received so the
// till can show change due.
func (h *PaymentHandler) Add(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req addPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.PaymentMethod == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payment_method is required"})
		return
	}
	if !payment.ValidMethod(req.PaymentMethod) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment_method"})
		return
	}

	order, ok := h.eng.GetOrder(orderID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	if order.Status == enum.OrderStatusPaid || order.Status == enum.OrderStatusVoid {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "order is already settled"})
		return
	}

	var change decimal.Decimal
	if req.PaymentMethod == enum.PaymentMethodCash && req.AmountReceived != "" {
		received, err := decimal.NewFromString(req.AmountReceived)
		if err != nil || received.LessThan(order.Total) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount_received must cover the order total"})
			return
		}
		change = received.Sub(order.Total)
	}

	capture, err := h.gw.Capture(r.Context(), req.PaymentMethod, order.Total)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidMethod) || errors.Is(err, payment.ErrInvalidAmount) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: payment capture for order %s: %v", orderID, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "payment failed"})
		return
	}

	completed, err := h.eng.CompleteOrder(orderID)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			// Captured but the order vanished from the active set, most
			// likely a concurrent void. Needs manual reconciliation.
			log.Printf("ERROR: captured payment %s but order %s is gone", capture.Reference, orderID)
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order no longer active"})
			return
		}
		log.Printf("ERROR: complete order %s: %v", orderID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := paymentResponse{
		OrderID:       completed.ID,
		PaymentMethod: capture.Method,
		Amount:        capture.Amount.String(),
		Reference:     capture.Reference,
		Order:         toOrderResponse(completed),
	}
	if change.IsPositive() {
		resp.ChangeAmount = change.String()
	}

	h.hub.Broadcast(ws.NewEvent("order.paid", resp.Order))
	writeJSON(w, http.StatusCreated, resp)
}
