package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"chipchart/internal/fetcher"
	"chipchart/internal/store"
)

// Refresher keeps the bar store warm for a watchlist of symbols so analysis
// requests can survive data source outages.
type Refresher struct {
	Cron    *cron.Cron
	Fetcher fetcher.Fetcher
	Store   store.Store
	Symbols []string
	Period  fetcher.Period
	Ctx     context.Context
}

// NewRefresher creates a new Refresher.
func NewRefresher(ctx context.Context, f fetcher.Fetcher, st store.Store, symbols []string, period fetcher.Period) *Refresher {
	return &Refresher{
		Cron:    cron.New(cron.WithSeconds()),
		Fetcher: f,
		Store:   st,
		Symbols: symbols,
		Period:  period,
		Ctx:     ctx,
	}
}

// Register schedules the refresh task.
func (r *Refresher) Register(cronSpec string) error {
	if _, err := r.Cron.AddFunc(cronSpec, r.RefreshNow); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Printf("[INFO] refresh scheduler started, %d symbols on watchlist", len(r.Symbols))
}

// Stop stops the cron scheduler gracefully.
func (r *Refresher) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] refresh scheduler stopped")
}

// RefreshNow fetches fresh bars for every watchlist symbol and writes them
// to the store. Failures are logged per symbol and do not abort the rest.
func (r *Refresher) RefreshNow() {
	for _, symbol := range r.Symbols {
		if err := r.refreshOne(symbol); err != nil {
			log.Printf("[ERROR] refresh %s: %v", symbol, err)
			continue
		}
		log.Printf("[INFO] refreshed bars for %s", symbol)
	}
}

func (r *Refresher) refreshOne(symbol string) error {
	ctx, cancel := context.WithTimeout(r.Ctx, 30*time.Second)
	defer cancel()

	bars, err := r.Fetcher.FetchDailyBars(ctx, symbol, r.Period)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if err := r.Store.SaveBars(symbol, bars); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
