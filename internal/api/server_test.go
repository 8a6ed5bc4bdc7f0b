package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/naratip/goldwatch/internal/alert"
	"github.com/naratip/goldwatch/internal/core"
	"github.com/naratip/goldwatch/internal/metrics"
)

// serverApp is a minimal App for routing tests.
type serverApp struct {
	manager *alert.Manager
}

func newServerApp() *serverApp {
	return &serverApp{manager: alert.NewManager()}
}

func (a *serverApp) LatestPrice() *core.GoldPrice {
	return &core.GoldPrice{Bar: core.PriceQuote{Sell: 42500}}
}

func (a *serverApp) Analysis() (core.IndicatorSnapshot, core.TradingSignal, bool) {
	return core.IndicatorSnapshot{RSI: 50}, core.TradingSignal{Type: core.SignalHold}, true
}

func (a *serverApp) History() []core.PriceUpdate      { return nil }
func (a *serverApp) TodayHistory() []core.PriceUpdate { return nil }
func (a *serverApp) TodayStats() *core.SessionStats   { return nil }

func (a *serverApp) Alerts() []alert.Alert { return a.manager.List() }

func (a *serverApp) AddAlert(target float64, dir alert.Direction) (alert.Alert, error) {
	return a.manager.Add(target, dir)
}

func (a *serverApp) RemoveAlert(id string) error { return a.manager.Remove(id) }
func (a *serverApp) ToggleAlert(id string) error { return a.manager.Toggle(id) }

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1", Port: 0, APIKey: apiKey}
	return NewServer(cfg, newServerApp(), zap.NewNop(), metrics.NewRegistry())
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t, "")

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/api/price", "", http.StatusOK},
		{"GET", "/api/analysis", "", http.StatusOK},
		{"GET", "/api/history", "", http.StatusOK},
		{"GET", "/api/stats", "", http.StatusOK},
		{"GET", "/api/alerts", "", http.StatusOK},
		{"POST", "/api/alerts", `{"target_price": 43000, "direction": "above"}`, http.StatusCreated},
		{"POST", "/api/profit", `{"buy_price": 40000, "current_price": 42000, "weight": 1, "unit": "baht"}`, http.StatusOK},
		{"GET", "/api/health", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/api/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()

			s.Handler().ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("expected %d, got %d (body: %s)", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestServer_AlertLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, "")

	// Create
	req := httptest.NewRequest("POST", "/api/alerts", strings.NewReader(`{"target_price": 43000, "direction": "above"}`))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}

	// Extract the generated ID
	body := w.Body.String()
	idx := strings.Index(body, `"id":"`)
	if idx < 0 {
		t.Fatalf("no id in response: %s", body)
	}
	id := body[idx+6:]
	id = id[:strings.Index(id, `"`)]

	// Toggle
	req = httptest.NewRequest("POST", "/api/alerts/"+id+"/toggle", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("toggle: expected 200, got %d", w.Code)
	}

	// Delete
	req = httptest.NewRequest("DELETE", "/api/alerts/"+id, nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("delete: expected 200, got %d", w.Code)
	}
}

func TestServer_APIKeyProtectsMutations(t *testing.T) {
	s := newTestServer(t, "secret")

	// Unauthenticated write is rejected
	req := httptest.NewRequest("POST", "/api/alerts", strings.NewReader(`{"target_price": 43000, "direction": "above"}`))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}

	// Reads stay open
	req = httptest.NewRequest("GET", "/api/price", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for GET, got %d", w.Code)
	}

	// Authenticated write succeeds
	req = httptest.NewRequest("POST", "/api/alerts", strings.NewReader(`{"target_price": 43000, "direction": "above"}`))
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on responses")
	}
}
