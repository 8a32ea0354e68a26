package models

// Quote represents a live price for a resolved ticker. Price is only
// meaningful when non-zero; a zero price means the upstream has no data
// for the symbol, not that it trades at zero.
type Quote struct {
	Ticker           string  `json:"ticker"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	DayChangePercent float64 `json:"day_change_percent"`
}

// HasPrice reports whether the quote carries usable price data.
func (q Quote) HasPrice() bool {
	return q.Price != 0
}

// TrendSet holds percentage returns over trailing windows. Day comes from
// the live quote, the rest are derived from the daily close series using
// approximate trading-day lookbacks (5/22/252). Zero doubles as the
// unavailable value; a true zero return is indistinguishable.
type TrendSet struct {
	Day   float64 `json:"d"`
	Week  float64 `json:"w"`
	Month float64 `json:"m"`
	Year  float64 `json:"y"`
}

// ResultRecord is one entry of a watchlist response. Name is echoed back
// exactly as the user entered it; Ticker is the candidate that produced
// the quote.
type ResultRecord struct {
	Name     string    `json:"name"`
	Ticker   string    `json:"ticker,omitempty"`
	Price    float64   `json:"price,omitempty"`
	Currency string    `json:"currency,omitempty"`
	Trend    *TrendSet `json:"tr,omitempty"`
	Error    bool      `json:"error,omitempty"`
}
