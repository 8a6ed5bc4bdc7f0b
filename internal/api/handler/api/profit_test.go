package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/naratip/goldwatch/internal/api/response"
)

func TestProfitHandler_Calculate(t *testing.T) {
	handler := NewProfitHandler(newTestApp())

	body := strings.NewReader(`{"buy_price": 40000, "current_price": 42000, "weight": 2, "unit": "baht"}`)
	req := httptest.NewRequest("POST", "/api/profit", body)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	data := resp.Data.(map[string]any)
	if data["total_cost"].(float64) != 80000 {
		t.Errorf("expected total_cost 80000, got %v", data["total_cost"])
	}
	if data["profit_loss"].(float64) != 4000 {
		t.Errorf("expected profit_loss 4000, got %v", data["profit_loss"])
	}
	if data["profit_loss_percent"].(float64) != 5 {
		t.Errorf("expected 5%% profit, got %v", data["profit_loss_percent"])
	}
}

func TestProfitHandler_Calculate_DefaultsToLatestQuote(t *testing.T) {
	app := newTestApp()
	app.price = testPrice(42000)

	handler := NewProfitHandler(app)

	body := strings.NewReader(`{"buy_price": 40000, "weight": 1, "unit": "baht"}`)
	req := httptest.NewRequest("POST", "/api/profit", body)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	data := resp.Data.(map[string]any)
	if data["current_price"].(float64) != 42000 {
		t.Errorf("expected bar sell quote 42000, got %v", data["current_price"])
	}
}

func TestProfitHandler_Calculate_Invalid(t *testing.T) {
	handler := NewProfitHandler(newTestApp())

	body := strings.NewReader(`{"buy_price": 0, "current_price": 42000, "weight": 1, "unit": "baht"}`)
	req := httptest.NewRequest("POST", "/api/profit", body)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
