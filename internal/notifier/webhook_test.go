package notifier

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhook_Notify(t *testing.T) {
	var received map[string]any
	var gotHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Token")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
	}))
	defer server.Close()

	wh := NewWebhook(server.URL, map[string]string{"X-Token": "secret"})

	if err := wh.Notify("gold price has risen above 72000 (now 72150)"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if received["type"] != "price_alert" {
		t.Errorf("payload type = %v, want price_alert", received["type"])
	}
	if received["message"] != "gold price has risen above 72000 (now 72150)" {
		t.Errorf("payload message = %v", received["message"])
	}
	if gotHeader != "secret" {
		t.Errorf("custom header = %q, want secret", gotHeader)
	}
}

func TestWebhook_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	wh := NewWebhook(server.URL, nil)

	if err := wh.Notify("msg"); err == nil {
		t.Error("expected an error on 500")
	}
}
