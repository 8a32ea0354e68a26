package models

// RecommendationTrend is one monthly analyst tally as reported by the
// upstream recommendation endpoint (most recent first).
type RecommendationTrend struct {
	Symbol     string `json:"symbol"`
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// Total returns the number of analysts covering the symbol this period.
func (t RecommendationTrend) Total() int {
	return t.StrongBuy + t.Buy + t.Hold + t.Sell + t.StrongSell
}

// RecommendationDetail breaks a consensus down by rating bucket.
type RecommendationDetail struct {
	StrongBuy  int `json:"strongBuy"`
	Buy        int `json:"buy"`
	Hold       int `json:"hold"`
	Sell       int `json:"sell"`
	StrongSell int `json:"strongSell"`
}

// RecommendationRecord is one entry of a recommendation scan response.
// Score is the weighted consensus in [1,5], BuyPercent the share of
// analysts rating buy or better.
type RecommendationRecord struct {
	Name       string               `json:"name"`
	Ticker     string               `json:"ticker"`
	Price      float64              `json:"price"`
	Currency   string               `json:"currency"`
	Score      float64              `json:"score"`
	BuyPercent float64              `json:"buyPct"`
	Consensus  string               `json:"consensus"`
	Analysts   int                  `json:"analysts"`
	Detail     RecommendationDetail `json:"detail"`
}

// Consensus labels mapped from the weighted score.
const (
	ConsensusStrongBuy  = "StrongBuy"
	ConsensusBuy        = "Buy"
	ConsensusHold       = "Hold"
	ConsensusSell       = "Sell"
	ConsensusStrongSell = "StrongSell"
)
