// Package stocks implements the dashboard's market-data core: it
// resolves user-entered security names to tradable tickers, fetches live
// quotes and trailing return statistics for a watchlist, and scans a
// fixed universe for analyst-consensus recommendations.
package stocks

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mrtalktube-debug/personal-dashboard/internal/batch"
	"github.com/mrtalktube-debug/personal-dashboard/internal/config"
	"github.com/mrtalktube-debug/personal-dashboard/internal/models"
)

// ErrMissingAPIKey fails a request before any upstream call is made.
var ErrMissingAPIKey = errors.New("stocks: FINNHUB_KEY is not configured")

// MarketData is the upstream quote provider surface the service needs.
// The finnhub client implements it; tests substitute a mock.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (models.Quote, error)
	Candles(ctx context.Context, symbol string, from, to time.Time) ([]float64, error)
	RecommendationTrends(ctx context.Context, symbol string) ([]models.RecommendationTrend, error)
}

// EventPublisher receives a notification after each completed request.
// May be nil when no broker is configured.
type EventPublisher interface {
	PublishScanCompleted(ctx context.Context, event models.ScanEvent) error
}

// Service orchestrates resolution, quoting and enrichment for one
// request at a time. It holds no per-request state; everything here is
// read-only after construction.
type Service struct {
	market    MarketData
	events    EventPublisher
	cfg       *config.Config
	hasAPIKey bool
}

// NewService creates a stocks service. events may be nil.
func NewService(market MarketData, events EventPublisher, cfg *config.Config) *Service {
	return &Service{
		market:    market,
		events:    events,
		cfg:       cfg,
		hasAPIKey: cfg.Finnhub.APIKey != "",
	}
}

// Watchlist resolves and quotes every requested symbol, preserving the
// caller's order. Symbols that yield no data are dropped, or reported as
// {name, error:true} records when IncludeFailedSymbols is set. A missing
// API key fails the whole request up front.
func (s *Service) Watchlist(ctx context.Context, symbols []string) ([]models.ResultRecord, error) {
	if !s.hasAPIKey {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()
	slots := batch.Run(ctx, symbols, s.cfg.Batch.Size, s.cfg.Batch.Delay, s.lookupSymbol)

	results := make([]models.ResultRecord, 0, len(slots))
	for i, rec := range slots {
		if rec == nil {
			if s.cfg.IncludeFailedSymbols {
				results = append(results, models.ResultRecord{Name: symbols[i], Error: true})
			}
			continue
		}
		results = append(results, *rec)
	}

	s.publish(ctx, models.ScanEvent{
		EventType:  "SCAN_COMPLETED",
		Mode:       "watchlist",
		Requested:  len(symbols),
		Returned:   len(results),
		Duration:   time.Since(start),
		OccurredAt: time.Now(),
	})
	return results, nil
}

// lookupSymbol resolves one user-entered name to a quoted, trend-enriched
// record, or nil when no candidate ticker has data.
func (s *Service) lookupSymbol(ctx context.Context, name string) *models.ResultRecord {
	quote, ok := s.quoteFirstCandidate(ctx, name)
	if !ok {
		return nil
	}

	tr := s.fetchTrend(ctx, quote.Ticker, quote.DayChangePercent)
	return &models.ResultRecord{
		Name:     name,
		Ticker:   quote.Ticker,
		Price:    quote.Price,
		Currency: quote.Currency,
		Trend:    &tr,
	}
}

// quoteFirstCandidate tries the resolved candidates in order and returns
// the first quote with a nonzero price, tagged with the candidate that
// matched so currency and trend lookups use the exact listing.
func (s *Service) quoteFirstCandidate(ctx context.Context, name string) (models.Quote, bool) {
	for _, candidate := range Resolve(name) {
		quote, err := s.market.Quote(ctx, candidate)
		if err != nil {
			log.Printf("quote for %s (candidate of %q) failed: %v", candidate, name, err)
			continue
		}
		if !quote.HasPrice() {
			continue
		}
		quote.Ticker = candidate
		quote.Currency = CurrencyFor(candidate)
		return quote, true
	}
	return models.Quote{}, false
}

func (s *Service) publish(ctx context.Context, event models.ScanEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishScanCompleted(ctx, event); err != nil {
		log.Printf("failed to publish %s event: %v", strings.ToLower(event.EventType), err)
	}
}
