package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dukapos/api/internal/engine"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// --- Shared response types ---

type orderItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	WaiterID   string              `json:"waiter_id"`
	WaiterName string              `json:"waiter_name"`
	Items      []orderItemResponse `json:"items"`
	Total      string              `json:"total"`
	Status     string              `json:"status"`
	Timestamp  time.Time           `json:"timestamp"`
}

func toOrderResponse(o engine.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice.String(),
			Quantity:  it.Quantity,
			Category:  it.Category,
		}
	}
	return orderResponse{
		ID:         o.ID,
		WaiterID:   o.WaiterID,
		WaiterName: o.WaiterName,
		Items:      items,
		Total:      o.Total.String(),
		Status:     o.Status,
		Timestamp:  o.Timestamp,
	}
}

func toOrderResponses(orders []engine.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

type moduleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Enabled     bool     `json:"enabled"`
	RequiredFor []string `json:"required_for"`
}

func toModuleResponse(m engine.Module) moduleResponse {
	return moduleResponse{
		ID:          m.ID,
		Name:        m.Name,
		Enabled:     m.Enabled,
		RequiredFor: m.RequiredFor,
	}
}
