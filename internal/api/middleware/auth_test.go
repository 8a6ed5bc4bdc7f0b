package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	wrapped := APIKeyAuth("secret-key")(okHandler())

	req := httptest.NewRequest("POST", "/api/alerts", nil)
	req.Header.Set("X-API-Key", "secret-key")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	wrapped := APIKeyAuth("secret-key")(okHandler())

	req := httptest.NewRequest("POST", "/api/alerts", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	wrapped := APIKeyAuth("secret-key")(okHandler())

	req := httptest.NewRequest("DELETE", "/api/alerts/abc", nil)
	req.Header.Set("X-API-Key", "wrong")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAPIKeyAuth_ReadsStayOpen(t *testing.T) {
	wrapped := APIKeyAuth("secret-key")(okHandler())

	req := httptest.NewRequest("GET", "/api/price", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for unauthenticated GET, got %d", w.Code)
	}
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	wrapped := APIKeyAuth("")(okHandler())

	req := httptest.NewRequest("POST", "/api/alerts", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 when auth disabled, got %d", w.Code)
	}
}
