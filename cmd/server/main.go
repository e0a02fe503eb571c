package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chipchart/internal/cache"
	"chipchart/internal/config"
	"chipchart/internal/fetcher"
	"chipchart/internal/scheduler"
	"chipchart/internal/server"
	"chipchart/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] chipchart starting...")

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Data source: Yahoo chart API behind the market-suffix fallback.
	yahoo := fetcher.NewYahooFetcher(cfg.Proxy)
	src := fetcher.NewSuffixFallback(yahoo, cfg.DataSource.MarketSuffixes)
	log.Printf("[INFO] data source: %s", src.Name())

	// Bar store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	resultCache := cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduled watchlist refresh
	if len(cfg.Schedule.Watchlist) > 0 {
		period, err := fetcher.ParsePeriod(cfg.DataSource.DefaultPeriod)
		if err != nil {
			log.Fatalf("[FATAL] default period: %v", err)
		}
		ref := scheduler.NewRefresher(ctx, src, st, cfg.Schedule.Watchlist, period)
		if err := ref.Register(cfg.Schedule.RefreshCron); err != nil {
			log.Fatalf("[FATAL] register refresh task: %v", err)
		}
		ref.Start()
		defer ref.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
			go ref.RefreshNow()
		}
	}

	srv := server.New(cfg, src, st, resultCache)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] chipchart is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] chipchart stopped")
}
