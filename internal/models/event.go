package models

import "time"

// ScanEvent represents a Kafka event emitted after a stocks request
// completes, for downstream consumers tracking dashboard activity.
type ScanEvent struct {
	EventType  string        `json:"event_type"`
	Mode       string        `json:"mode"`
	Requested  int           `json:"requested"`
	Returned   int           `json:"returned"`
	Duration   time.Duration `json:"duration_ns"`
	TopTicker  string        `json:"top_ticker,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
