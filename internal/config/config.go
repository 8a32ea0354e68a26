package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultWatchlist is the universe scanned in recommendations mode when
// WATCHLIST is not configured.
var DefaultWatchlist = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA",
	"ASML", "NVO", "SHEL", "ADBE", "AMD", "NFLX", "CRM", "INTC",
}

// Config holds all application configuration. It is loaded once at
// startup and never mutated, so it is safe for concurrent reads.
type Config struct {
	Server  ServerConfig
	Finnhub FinnhubConfig
	Batch   BatchConfig
	Redis   RedisConfig
	Kafka   KafkaConfig

	// Watchlist is the fixed ticker universe for recommendation scans.
	Watchlist []string

	// IncludeFailedSymbols emits {name, error:true} records for symbols
	// that resolve to no data instead of dropping them.
	IncludeFailedSymbols bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// FinnhubConfig holds upstream quote provider configuration
type FinnhubConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// BatchConfig paces outbound fan-out to stay under the upstream quota
type BatchConfig struct {
	Size  int
	Delay time.Duration
}

// RedisConfig holds the optional quote cache configuration. An empty
// Addr disables caching entirely.
type RedisConfig struct {
	Addr     string
	QuoteTTL time.Duration
}

// KafkaConfig holds the optional event producer configuration. Empty
// Brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Finnhub: FinnhubConfig{
			APIKey:  os.Getenv("FINNHUB_KEY"),
			BaseURL: getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			Timeout: getDuration("HTTP_TIMEOUT", 5*time.Second),
		},
		Batch: BatchConfig{
			Size:  getInt("BATCH_SIZE", 10),
			Delay: getDuration("BATCH_DELAY", time.Second),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			QuoteTTL: getDuration("QUOTE_CACHE_TTL", time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: getList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "stock-events"),
		},
		Watchlist:            getWatchlist(),
		IncludeFailedSymbols: getBool("INCLUDE_FAILED_SYMBOLS", false),
	}
}

func getWatchlist() []string {
	raw := os.Getenv("WATCHLIST")
	if raw == "" {
		return DefaultWatchlist
	}
	var list []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			list = append(list, s)
		}
	}
	if len(list) == 0 {
		return DefaultWatchlist
	}
	return list
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var list []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}
	return list
}
