package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dukapos/api/internal/auth"
	"github.com/dukapos/api/internal/middleware"
	"github.com/dukapos/api/internal/ws"
	"github.com/google/uuid"
)

// mockHub records broadcast events instead of fanning them out.
type mockHub struct {
	mu     sync.Mutex
	events []ws.Event
}

func (m *mockHub) Broadcast(event ws.Event) {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
}

func (m *mockHub) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

// newRequest builds a JSON request carrying waiter claims, bypassing
// the Authenticate middleware.
func newRequest(t *testing.T, method, target string, body interface{}, claims *auth.Claims) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	return req
}

func waiterClaims(name string) *auth.Claims {
	return &auth.Claims{UserID: uuid.New(), Name: name, Role: "WAITER"}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
