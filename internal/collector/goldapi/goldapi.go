// Package goldapi fetches the Thai gold traders association price
// board via the chnwt.dev JSON API.
package goldapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/naratip/goldwatch/internal/core"
)

const baseURL = "https://api.chnwt.dev/thai-gold-api"

// The board announces prices in numbered rounds during the day; the
// round is embedded in the update-time string.
var roundPattern = regexp.MustCompile(`ครั้งที่\s*(\d+)`)

// Client is the Thai gold API client.
type Client struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// New creates a new gold API client.
func New() *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		now:     time.Now,
	}
}

// NewWithBaseURL creates a client with a custom base URL (for testing).
func NewWithBaseURL(url string) *Client {
	c := New()
	c.baseURL = url
	return c
}

func (c *Client) Name() string {
	return "thai-gold-api"
}

type latestResponse struct {
	Status   string `json:"status"`
	Response struct {
		Date       string `json:"date"`
		UpdateDate string `json:"update_date"`
		UpdateTime string `json:"update_time"`
		Price      struct {
			Gold    pricePair `json:"gold"`
			GoldBar pricePair `json:"gold_bar"`
		} `json:"price"`
	} `json:"response"`
}

type pricePair struct {
	Buy  string `json:"buy"`
	Sell string `json:"sell"`
}

// FetchLatest fetches the current board quote. Change fields are left
// at zero; the caller computes them against the day's opening price.
func (c *Client) FetchLatest() (*core.GoldPrice, error) {
	url := fmt.Sprintf("%s/latest", c.baseURL)

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

	var result latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, core.WrapError(core.ErrFeedMalformed, err)
	}

	if result.Status != "success" {
		return nil, core.WrapError(core.ErrFeedMalformed, fmt.Errorf("status %q", result.Status))
	}

	now := c.now()
	price := result.Response

	return &core.GoldPrice{
		Bar: core.PriceQuote{
			Buy:  parseThaiNumber(price.Price.GoldBar.Buy),
			Sell: parseThaiNumber(price.Price.GoldBar.Sell),
			Time: now,
		},
		Ornament: core.PriceQuote{
			Buy:  parseThaiNumber(price.Price.Gold.Buy),
			Sell: parseThaiNumber(price.Price.Gold.Sell),
			Time: now,
		},
		Round:      parseRound(price.UpdateTime),
		LastUpdate: strings.TrimSpace(price.UpdateDate + " " + price.UpdateTime),
	}, nil
}

// parseThaiNumber parses a thousand-separated board figure such as
// "71,631.00". Unparseable input yields 0.
func parseThaiNumber(value string) float64 {
	if value == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0
	}
	return n
}

// parseRound extracts the disclosure round from the update-time
// string; a missing round defaults to 1.
func parseRound(updateTime string) int {
	matches := roundPattern.FindStringSubmatch(updateTime)
	if len(matches) != 2 {
		return 1
	}
	round, err := strconv.Atoi(matches[1])
	if err != nil {
		return 1
	}
	return round
}
