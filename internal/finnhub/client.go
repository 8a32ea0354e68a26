package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mrtalktube-debug/personal-dashboard/internal/cache"
	"github.com/mrtalktube-debug/personal-dashboard/internal/models"
)

// ErrNoData indicates the upstream answered but had no usable data for
// the symbol (zero price, empty candle series, no recommendation rows).
var ErrNoData = errors.New("finnhub: no data for symbol")

// Client talks to the Finnhub REST API. All methods honor the passed
// context and the configured per-request timeout; any transport error,
// non-200 status or malformed payload is returned to the caller, which
// decides whether to drop or zero-fill (see the stocks package).
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	quotes  *cache.QuoteCache
}

// NewClient creates a Finnhub client. quotes may be nil to disable the
// read-through quote cache.
func NewClient(baseURL, token string, timeout time.Duration, quotes *cache.QuoteCache) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		quotes:  quotes,
	}
}

type quoteResponse struct {
	Current          float64 `json:"c"`
	DayChangePercent float64 `json:"dp"`
}

// Quote fetches the live quote for one ticker. The returned quote may
// carry a zero price, which callers must treat as absent data.
func (c *Client) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	if q, ok := c.quotes.Get(ctx, symbol); ok {
		return q, nil
	}

	var resp quoteResponse
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &resp); err != nil {
		return models.Quote{}, err
	}

	quote := models.Quote{
		Ticker:           symbol,
		Price:            resp.Current,
		DayChangePercent: resp.DayChangePercent,
	}
	if quote.HasPrice() {
		c.quotes.Set(ctx, quote)
	}
	return quote, nil
}

type candleResponse struct {
	Status string    `json:"s"`
	Closes []float64 `json:"c"`
}

// Candles fetches the daily close series for symbol between from and to,
// oldest first. A non-ok status or empty series yields ErrNoData.
func (c *Client) Candles(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	params := url.Values{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {fmt.Sprintf("%d", from.Unix())},
		"to":         {fmt.Sprintf("%d", to.Unix())},
	}

	var resp candleResponse
	if err := c.get(ctx, "/candle", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" || len(resp.Closes) == 0 {
		return nil, ErrNoData
	}
	return resp.Closes, nil
}

// RecommendationTrends fetches the monthly analyst tallies for symbol,
// most recent first. An empty list yields ErrNoData.
func (c *Client) RecommendationTrends(ctx context.Context, symbol string) ([]models.RecommendationTrend, error) {
	var trends []models.RecommendationTrend
	if err := c.get(ctx, "/recommendation", url.Values{"symbol": {symbol}}, &trends); err != nil {
		return nil, err
	}
	if len(trends) == 0 {
		return nil, ErrNoData
	}
	return trends, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
