package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mrtalktube-debug/personal-dashboard/internal/models"
)

// QuoteCache is a short-TTL read-through cache for live quotes, keyed by
// ticker. It exists purely to absorb repeated dashboard refreshes within
// the upstream rate-limit window; entries expire within a minute or so,
// no historical data is retained. A nil *QuoteCache is a valid no-op
// cache, and any Redis error degrades to a miss.
type QuoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuoteCache connects to Redis at addr. Returns nil (caching
// disabled) when addr is empty.
func NewQuoteCache(addr string, ttl time.Duration) *QuoteCache {
	if addr == "" {
		return nil
	}
	return &QuoteCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// Get returns the cached quote for ticker, if present and fresh.
func (c *QuoteCache) Get(ctx context.Context, ticker string) (models.Quote, bool) {
	if c == nil {
		return models.Quote{}, false
	}

	data, err := c.rdb.Get(ctx, key(ticker)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("quote cache read for %s failed: %v", ticker, err)
		}
		return models.Quote{}, false
	}

	var q models.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return models.Quote{}, false
	}
	return q, true
}

// Set stores a quote under its ticker with the configured TTL.
func (c *QuoteCache) Set(ctx context.Context, q models.Quote) {
	if c == nil {
		return
	}

	data, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(q.Ticker), data, c.ttl).Err(); err != nil {
		log.Printf("quote cache write for %s failed: %v", q.Ticker, err)
	}
}

// Close releases the Redis connection.
func (c *QuoteCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func key(ticker string) string {
	return "quote:" + ticker
}
