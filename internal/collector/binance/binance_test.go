package binance

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/naratip/goldwatch/internal/core"
)

const klinesPayload = `[
  [1717398000000, "2350.5", "2356.0", "2348.2", "2354.1", "1234.5", 1717401599999, "0", 100, "0", "0", "0"],
  [1717401600000, "2354.1", "2360.0", "2352.0", "2358.7", "987.6", 1717405199999, "0", 90, "0", "0", "0"]
]`

func TestFetchKlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fapi/v1/klines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "XAUUSDT" {
			t.Errorf("symbol = %s, want XAUUSDT", got)
		}
		w.Write([]byte(klinesPayload))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL)

	got, err := client.FetchKlines("XAUUSDT", "1h", 200)
	if err != nil {
		t.Fatalf("FetchKlines: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d candles, want 2", len(got))
	}

	first := got[0]
	if !first.Time.Equal(time.UnixMilli(1717398000000)) {
		t.Errorf("time = %v, want open time of the first kline", first.Time)
	}
	if first.Open != 2350.5 || first.High != 2356.0 || first.Low != 2348.2 || first.Close != 2354.1 {
		t.Errorf("OHLC = %+v", first)
	}
	if first.Volume != 1234.5 {
		t.Errorf("volume = %f, want 1234.5", first.Volume)
	}

	if !got[0].Time.Before(got[1].Time) {
		t.Error("candles should arrive oldest first")
	}
}

func TestFetchKlines_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL)

	if _, err := client.FetchKlines("XAUUSDT", "1h", 200); !errors.Is(err, core.ErrFeedFailed) {
		t.Errorf("err = %v, want ErrFeedFailed", err)
	}
}

func TestFetchPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fapi/v1/ticker/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"symbol": "XAUUSDT", "price": "2354.10"}`))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL)

	got, err := client.FetchPrice("XAUUSDT")
	if err != nil {
		t.Fatalf("FetchPrice: %v", err)
	}
	if got != 2354.10 {
		t.Errorf("price = %f, want 2354.10", got)
	}
}

func TestFetchPrice_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol": "XAUUSDT", "price": "not-a-number"}`))
	}))
	defer server.Close()

	client := NewWithBaseURL(server.URL)

	if _, err := client.FetchPrice("XAUUSDT"); !errors.Is(err, core.ErrFeedMalformed) {
		t.Errorf("err = %v, want ErrFeedMalformed", err)
	}
}
