// Package binance fetches candlestick data from the Binance futures
// API; the PAXG gold-backed token tracks spot gold closely enough to
// drive the indicator charts.
package binance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/naratip/goldwatch/internal/core"
)

const baseURL = "https://fapi.binance.com"

// Client implements the CandleSource interface against Binance futures.
type Client struct {
	client  *http.Client
	baseURL string
}

// New creates a new Binance futures client.
func New() *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// NewWithBaseURL creates a client with a custom base URL (for testing).
func NewWithBaseURL(url string) *Client {
	c := New()
	c.baseURL = url
	return c
}

func (c *Client) Name() string {
	return "binance-futures"
}

// FetchKlines fetches up to limit candles for the symbol at the given
// interval ("5m", "1h", "1d", ...), oldest first.
func (c *Client) FetchKlines(symbol, interval string, limit int) ([]core.PriceSample, error) {
	url := fmt.Sprintf("%s/fapi/v1/klines?symbol=%s&interval=%s&limit=%d",
		c.baseURL, symbol, interval, limit)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrFeedFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrFeedFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	// Klines arrive as positional arrays:
	// [openTime, open, high, low, close, volume, closeTime, ...]
	var klines [][]any
	if err := json.NewDecoder(resp.Body).Decode(&klines); err != nil {
		return nil, core.WrapError(core.ErrFeedMalformed, err)
	}

	samples := make([]core.PriceSample, 0, len(klines))
	for _, k := range klines {
		if len(k) < 6 {
			continue
		}

		openTime, ok := k[0].(float64)
		if !ok {
			continue
		}

		samples = append(samples, core.PriceSample{
			Time:   time.UnixMilli(int64(openTime)),
			Open:   parseField(k[1]),
			High:   parseField(k[2]),
			Low:    parseField(k[3]),
			Close:  parseField(k[4]),
			Volume: parseField(k[5]),
		})
	}

	return samples, nil
}

// FetchPrice fetches the current mark price for the symbol.
func (c *Client) FetchPrice(symbol string) (float64, error) {
	url := fmt.Sprintf("%s/fapi/v1/ticker/price?symbol=%s", c.baseURL, symbol)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, core.WrapError(core.ErrFeedFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, core.WrapError(core.ErrFeedFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, core.WrapError(core.ErrFeedMalformed, err)
	}

	price, err := strconv.ParseFloat(result.Price, 64)
	if err != nil {
		return 0, core.WrapError(core.ErrFeedMalformed, err)
	}
	return price, nil
}

// parseField handles Binance's habit of sending numbers as strings.
func parseField(v any) float64 {
	switch t := v.(type) {
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	case float64:
		return t
	}
	return 0
}
