package stocks

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrtalktube-debug/personal-dashboard/internal/batch"
	"github.com/mrtalktube-debug/personal-dashboard/internal/models"
)

// Consensus score thresholds. Score is a weighted average of analyst
// ratings in [1,5], 5 meaning every analyst says strong buy.
const (
	strongBuyThreshold = 4.3
	buyThreshold       = 3.7
	holdThreshold      = 2.5
	sellThreshold      = 1.8
)

// Recommendations scans the configured watchlist universe and returns a
// ranked consensus list, best score first. Tickers without a price, an
// analyst tally, or any coverage at all are skipped. The sort is stable,
// so tied scores keep their scan order.
func (s *Service) Recommendations(ctx context.Context) ([]models.RecommendationRecord, error) {
	if !s.hasAPIKey {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()
	universe := s.cfg.Watchlist
	slots := batch.Run(ctx, universe, s.cfg.Batch.Size, s.cfg.Batch.Delay, s.scanTicker)

	results := make([]models.RecommendationRecord, 0, len(slots))
	for _, rec := range slots {
		if rec != nil {
			results = append(results, *rec)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	event := models.ScanEvent{
		EventType:  "SCAN_COMPLETED",
		Mode:       "recommendations",
		Requested:  len(universe),
		Returned:   len(results),
		Duration:   time.Since(start),
		OccurredAt: time.Now(),
	}
	if len(results) > 0 {
		event.TopTicker = results[0].Ticker
	}
	s.publish(ctx, event)
	return results, nil
}

// scanTicker fetches quote and analyst tally for one universe ticker
// concurrently and scores the result, or returns nil when the ticker
// has no price or no coverage.
func (s *Service) scanTicker(ctx context.Context, ticker string) *models.RecommendationRecord {
	var (
		quote    models.Quote
		quoteErr error
		trends   []models.RecommendationTrend
		trendErr error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		trends, trendErr = s.market.RecommendationTrends(ctx, ticker)
	}()
	quote, quoteErr = s.market.Quote(ctx, ticker)
	<-done

	if quoteErr != nil {
		log.Printf("quote for %s failed during scan: %v", ticker, quoteErr)
		return nil
	}
	if !quote.HasPrice() {
		return nil
	}
	if trendErr != nil {
		log.Printf("recommendation trend for %s unavailable: %v", ticker, trendErr)
		return nil
	}
	if len(trends) == 0 {
		return nil
	}

	latest := trends[0]
	total := latest.Total()
	if total == 0 {
		return nil
	}

	score := scoreConsensus(latest, total)
	return &models.RecommendationRecord{
		Name:       ticker,
		Ticker:     ticker,
		Price:      quote.Price,
		Currency:   CurrencyFor(ticker),
		Score:      score,
		BuyPercent: buyPercent(latest, total),
		Consensus:  consensusLabel(score),
		Analysts:   total,
		Detail: models.RecommendationDetail{
			StrongBuy:  latest.StrongBuy,
			Buy:        latest.Buy,
			Hold:       latest.Hold,
			Sell:       latest.Sell,
			StrongSell: latest.StrongSell,
		},
	}
}

// scoreConsensus weights the tally 5..1 from strong buy down to strong
// sell and averages over the analyst count, rounded to two decimals.
func scoreConsensus(t models.RecommendationTrend, total int) float64 {
	weighted := 5*t.StrongBuy + 4*t.Buy + 3*t.Hold + 2*t.Sell + 1*t.StrongSell
	return decimal.NewFromInt(int64(weighted)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}

// buyPercent is the share of analysts rating buy or better, rounded to
// the nearest whole percent.
func buyPercent(t models.RecommendationTrend, total int) float64 {
	return decimal.NewFromInt(int64(t.StrongBuy + t.Buy)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		InexactFloat64()
}

func consensusLabel(score float64) string {
	switch {
	case score >= strongBuyThreshold:
		return models.ConsensusStrongBuy
	case score >= buyThreshold:
		return models.ConsensusBuy
	case score >= holdThreshold:
		return models.ConsensusHold
	case score >= sellThreshold:
		return models.ConsensusSell
	default:
		return models.ConsensusStrongSell
	}
}
