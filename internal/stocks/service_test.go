package stocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrtalktube-debug/personal-dashboard/internal/config"
	"github.com/mrtalktube-debug/personal-dashboard/internal/models"
)

// MockMarketData implements MarketData for testing
type MockMarketData struct {
	quotes    map[string]models.Quote
	quoteErrs map[string]error
	closes    map[string][]float64
	trends    map[string][]models.RecommendationTrend

	// Track calls for verification
	QuoteCalls []string
}

func NewMockMarketData() *MockMarketData {
	return &MockMarketData{
		quotes:    make(map[string]models.Quote),
		quoteErrs: make(map[string]error),
		closes:    make(map[string][]float64),
		trends:    make(map[string][]models.RecommendationTrend),
	}
}

func (m *MockMarketData) Quote(_ context.Context, symbol string) (models.Quote, error) {
	m.QuoteCalls = append(m.QuoteCalls, symbol)
	if err, ok := m.quoteErrs[symbol]; ok {
		return models.Quote{}, err
	}
	return m.quotes[symbol], nil
}

func (m *MockMarketData) Candles(_ context.Context, symbol string, _, _ time.Time) ([]float64, error) {
	closes, ok := m.closes[symbol]
	if !ok {
		return nil, errors.New("no data for symbol")
	}
	return closes, nil
}

func (m *MockMarketData) RecommendationTrends(_ context.Context, symbol string) ([]models.RecommendationTrend, error) {
	trends, ok := m.trends[symbol]
	if !ok {
		return nil, errors.New("no data for symbol")
	}
	return trends, nil
}

// MockPublisher records published events
type MockPublisher struct {
	Events []models.ScanEvent
}

func (m *MockPublisher) PublishScanCompleted(_ context.Context, event models.ScanEvent) error {
	m.Events = append(m.Events, event)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Finnhub: config.FinnhubConfig{APIKey: "test-key"},
		Batch:   config.BatchConfig{Size: 4, Delay: 0},
	}
}

func TestWatchlist(t *testing.T) {
	t.Run("fails without an API key before any fetch", func(t *testing.T) {
		market := NewMockMarketData()
		cfg := testConfig()
		cfg.Finnhub.APIKey = ""

		_, err := NewService(market, nil, cfg).Watchlist(context.Background(), []string{"AAPL"})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		assert.Empty(t, market.QuoteCalls)
	})

	t.Run("drops symbols with no data and keeps the rest", func(t *testing.T) {
		market := NewMockMarketData()
		market.quotes["AAPL"] = models.Quote{Price: 150.0, DayChangePercent: 1.2}
		service := NewService(market, nil, testConfig())

		results, err := service.Watchlist(context.Background(), []string{"AAPL", "UNKNOWNXYZ"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "AAPL", results[0].Name)
		assert.Equal(t, "AAPL", results[0].Ticker)
		assert.Equal(t, 150.0, results[0].Price)
		assert.Equal(t, "USD", results[0].Currency)
	})

	t.Run("tries candidates in order until one has a price", func(t *testing.T) {
		market := NewMockMarketData()
		market.quotes["NVO"] = models.Quote{Price: 0}
		market.quotes["NOVOB.CO"] = models.Quote{Price: 612.40, DayChangePercent: -0.3}
		service := NewService(market, nil, testConfig())

		results, err := service.Watchlist(context.Background(), []string{"Novo Nordisk"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"NVO", "NOVOB.CO"}, market.QuoteCalls)
		assert.Equal(t, "Novo Nordisk", results[0].Name)
		assert.Equal(t, "NOVOB.CO", results[0].Ticker)
		assert.Equal(t, "DKK", results[0].Currency)
	})

	t.Run("transport error on one candidate advances to the next", func(t *testing.T) {
		market := NewMockMarketData()
		market.quoteErrs["ASML"] = errors.New("connection refused")
		market.quotes["ASML.AS"] = models.Quote{Price: 890.10}
		service := NewService(market, nil, testConfig())

		results, err := service.Watchlist(context.Background(), []string{"ASML"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "ASML.AS", results[0].Ticker)
		assert.Equal(t, "EUR", results[0].Currency)
	})

	t.Run("derives trends from the close series with two-decimal rounding", func(t *testing.T) {
		closes := make([]float64, 252)
		for i := range closes {
			closes[i] = 100
		}
		closes[229] = 96  // 22 trading days back
		closes[246] = 110 // 5 trading days back
		closes[251] = 120 // current

		market := NewMockMarketData()
		market.quotes["AAPL"] = models.Quote{Price: 120, DayChangePercent: 1.005}
		market.closes["AAPL"] = closes
		service := NewService(market, nil, testConfig())

		results, err := service.Watchlist(context.Background(), []string{"AAPL"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.NotNil(t, results[0].Trend)
		tr := *results[0].Trend
		assert.Equal(t, 1.01, tr.Day)
		assert.Equal(t, 9.09, tr.Week)  // (120-110)/110
		assert.Equal(t, 25.0, tr.Month) // (120-96)/96
		assert.Equal(t, 20.0, tr.Year)  // lookback clamped to closes[0]
	})

	t.Run("missing close series degrades trends to zero without dropping the record", func(t *testing.T) {
		market := NewMockMarketData()
		market.quotes["AAPL"] = models.Quote{Price: 150.0, DayChangePercent: 0.5}
		service := NewService(market, nil, testConfig())

		results, err := service.Watchlist(context.Background(), []string{"AAPL"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.NotNil(t, results[0].Trend)
		assert.Equal(t, models.TrendSet{Day: 0.5}, *results[0].Trend)
	})

	t.Run("preserves caller order across batches", func(t *testing.T) {
		market := NewMockMarketData()
		symbols := []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"}
		for i, s := range symbols {
			market.quotes[s] = models.Quote{Price: float64(i + 1)}
		}
		cfg := testConfig()
		cfg.Batch.Size = 2
		service := NewService(market, nil, cfg)

		results, err := service.Watchlist(context.Background(), symbols)
		require.NoError(t, err)
		require.Len(t, results, len(symbols))
		for i, r := range results {
			assert.Equal(t, symbols[i], r.Name)
			assert.Equal(t, float64(i+1), r.Price)
		}
	})

	t.Run("reports failed symbols when configured", func(t *testing.T) {
		market := NewMockMarketData()
		market.quotes["AAPL"] = models.Quote{Price: 150.0}
		cfg := testConfig()
		cfg.IncludeFailedSymbols = true
		service := NewService(market, nil, cfg)

		results, err := service.Watchlist(context.Background(), []string{"AAPL", "UNKNOWNXYZ"})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.False(t, results[0].Error)
		assert.Equal(t, models.ResultRecord{Name: "UNKNOWNXYZ", Error: true}, results[1])
	})

	t.Run("publishes a scan event after completion", func(t *testing.T) {
		market := NewMockMarketData()
		market.quotes["AAPL"] = models.Quote{Price: 150.0}
		publisher := &MockPublisher{}
		service := NewService(market, publisher, testConfig())

		_, err := service.Watchlist(context.Background(), []string{"AAPL", "UNKNOWNXYZ"})
		require.NoError(t, err)
		require.Len(t, publisher.Events, 1)
		event := publisher.Events[0]
		assert.Equal(t, "SCAN_COMPLETED", event.EventType)
		assert.Equal(t, "watchlist", event.Mode)
		assert.Equal(t, 2, event.Requested)
		assert.Equal(t, 1, event.Returned)
	})
}

func TestTrailingReturn(t *testing.T) {
	t.Run("non-positive historical price yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, trailingReturn([]float64{0, 120}, 1))
		assert.Equal(t, 0.0, trailingReturn([]float64{-5, 120}, 1))
	})

	t.Run("empty series yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, trailingReturn(nil, 5))
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		// (121-99)/99*100 = 22.2222...
		assert.Equal(t, 22.22, trailingReturn([]float64{99, 121}, 1))
	})
}
