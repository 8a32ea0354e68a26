package stocks

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrtalktube-debug/personal-dashboard/internal/models"
)

// Approximate trading days per window. Calendar-day lookbacks would need
// an exchange calendar; the approximation is intentional.
const (
	weekLookback  = 5
	monthLookback = 22
	yearLookback  = 252
)

// candleWindow is how far back the daily close series is requested.
const candleWindow = 365 * 24 * time.Hour

// fetchTrend derives week/month/year percentage returns for ticker from
// ~1 year of daily closes. The day change comes straight from the live
// quote, not the series. Trend data is best effort: when the series is
// unavailable the remaining fields stay zero rather than failing the
// record.
func (s *Service) fetchTrend(ctx context.Context, ticker string, dayChange float64) models.TrendSet {
	tr := models.TrendSet{Day: round2(dayChange)}

	now := time.Now()
	closes, err := s.market.Candles(ctx, ticker, now.Add(-candleWindow), now)
	if err != nil {
		log.Printf("candle series for %s unavailable: %v", ticker, err)
		return tr
	}

	tr.Week = trailingReturn(closes, weekLookback)
	tr.Month = trailingReturn(closes, monthLookback)
	tr.Year = trailingReturn(closes, yearLookback)
	return tr
}

// trailingReturn computes the percentage change between the latest close
// and the close daysAgo entries earlier, clamped to the start of the
// series. A non-positive historical price yields 0.
func trailingReturn(closes []float64, daysAgo int) float64 {
	if len(closes) == 0 {
		return 0
	}

	last := len(closes) - 1
	base := last - daysAgo
	if base < 0 {
		base = 0
	}

	past := closes[base]
	if past <= 0 {
		return 0
	}
	return round2((closes[last] - past) / past * 100)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
