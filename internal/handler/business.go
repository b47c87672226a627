package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dukapos/api/internal/engine"
	"github.com/dukapos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// BusinessEngine defines the engine methods needed by business config
// handlers. Satisfied by *engine.Engine; narrow interface for
// testability.
type BusinessEngine interface {
	Business() engine.Business
	Modules() []engine.Module
	SetBusinessType(t string) error
	ToggleModule(id string) (engine.Module, error)
	UpdateSettings(u engine.SettingsUpdate) error
}

// Broadcaster fans events out to connected terminals. Satisfied by
// *ws.Hub.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// BusinessHandler handles business configuration endpoints.
type BusinessHandler struct {
	eng BusinessEngine
	hub Broadcaster
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(eng BusinessEngine, hub Broadcaster) *BusinessHandler {
	return &BusinessHandler{eng: eng, hub: hub}
}

// RegisterRoutes registers business config endpoints on the given Chi
// router. Expected to be mounted at /business.
func (h *BusinessHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Patch("/settings", h.UpdateSettings)
	r.Put("/type", h.SetType)
	r.Get("/modules", h.ListModules)
	r.Post("/modules/{id}/toggle", h.ToggleModule)
}

// --- Request / Response types ---

type businessResponse struct {
	BusinessName string           `json:"business_name"`
	BusinessType string           `json:"business_type"`
	Currency     string           `json:"currency"`
	TaxRate      string           `json:"tax_rate"`
	Modules      []moduleResponse `json:"modules"`
}

type updateSettingsRequest struct {
	BusinessName *string `json:"business_name"`
	Currency     *string `json:"currency"`
	TaxRate      *string `json:"tax_rate"`
}

type setTypeRequest struct {
	BusinessType string `json:"business_type"`
}

// --- Handlers ---

// Get handles GET /business.
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.businessResponse())
}

// UpdateSettings handles PATCH /business/settings. Only name, currency,
// and tax rate can change here; the business type has its own endpoint
// because changing it triggers the module activation pass.
func (h *BusinessHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	update := engine.SettingsUpdate{
		BusinessName: req.BusinessName,
		Currency:     req.Currency,
	}
	if req.TaxRate != nil {
		rate, err := decimal.NewFromString(*req.TaxRate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tax_rate"})
			return
		}
		update.TaxRate = &rate
	}

	if err := h.eng.UpdateSettings(update); err != nil {
		if errors.Is(err, engine.ErrInvalidTaxRate) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: update settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := h.businessResponse()
	h.hub.Broadcast(ws.NewEvent("config.updated", resp))
	writeJSON(w, http.StatusOK, resp)
}

// SetType handles PUT /business/type. Switching the vertical enables
// every module it requires before any reader sees the new type.
func (h *BusinessHandler) SetType(w http.ResponseWriter, r *http.Request) {
	var req setTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.BusinessType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "business_type is required"})
		return
	}

	if err := h.eng.SetBusinessType(req.BusinessType); err != nil {
		if errors.Is(err, engine.ErrInvalidBusinessType) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: set business type: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := h.businessResponse()
	h.hub.Broadcast(ws.NewEvent("config.updated", resp))
	writeJSON(w, http.StatusOK, resp)
}

// ListModules handles GET /business/modules.
func (h *BusinessHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	modules := h.eng.Modules()
	out := make([]moduleResponse, len(modules))
	for i, m := range modules {
		out[i] = toModuleResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// ToggleModule handles POST /business/modules/{id}/toggle.
func (h *BusinessHandler) ToggleModule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	module, err := h.eng.ToggleModule(id)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "module not found"})
			return
		}
		log.Printf("ERROR: toggle module: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toModuleResponse(module)
	h.hub.Broadcast(ws.NewEvent("config.updated", h.businessResponse()))
	writeJSON(w, http.StatusOK, resp)
}

func (h *BusinessHandler) businessResponse() businessResponse {
	b := h.eng.Business()
	modules := h.eng.Modules()
	out := make([]moduleResponse, len(modules))
	for i, m := range modules {
		out[i] = toModuleResponse(m)
	}
	return businessResponse{
		BusinessName: b.Name,
		BusinessType: b.Type,
		Currency:     b.Currency,
		TaxRate:      b.TaxRate.String(),
		Modules:      out,
	}
}
