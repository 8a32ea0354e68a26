package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mrtalktube-debug/personal-dashboard/internal/api"
	"github.com/mrtalktube-debug/personal-dashboard/internal/cache"
	"github.com/mrtalktube-debug/personal-dashboard/internal/config"
	"github.com/mrtalktube-debug/personal-dashboard/internal/finnhub"
	"github.com/mrtalktube-debug/personal-dashboard/internal/kafka"
	"github.com/mrtalktube-debug/personal-dashboard/internal/stocks"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	if cfg.Finnhub.APIKey == "" {
		log.Println("warning: FINNHUB_KEY not set, stock requests will fail")
	}

	quotes := cache.NewQuoteCache(cfg.Redis.Addr, cfg.Redis.QuoteTTL)
	if quotes != nil {
		defer quotes.Close()
		log.Printf("quote cache enabled via redis at %s", cfg.Redis.Addr)
	}

	market := finnhub.NewClient(cfg.Finnhub.BaseURL, cfg.Finnhub.APIKey, cfg.Finnhub.Timeout, quotes)

	var events stocks.EventPublisher
	if producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic); producer != nil {
		defer producer.Close()
		events = producer
		log.Printf("publishing scan events to topic %s", cfg.Kafka.Topic)
	}

	service := stocks.NewService(market, events, cfg)
	router := api.SetupRoutes(api.NewHandler(service))

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("stocks service listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
