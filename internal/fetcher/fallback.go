package fetcher

import (
	"context"
	"fmt"
	"log"
	"strings"

	"chipchart/internal/model"
)

// SuffixFallback wraps a Fetcher and retries a bare symbol with each
// configured market suffix until one returns data, so users can type "2330"
// and get "2330.TW". Symbols that already carry a suffix are tried as-is
// only.
type SuffixFallback struct {
	Fetcher  Fetcher
	Suffixes []string
}

// NewSuffixFallback wraps f with the given market suffixes (e.g. ".TW", ".TWO").
func NewSuffixFallback(f Fetcher, suffixes []string) *SuffixFallback {
	return &SuffixFallback{Fetcher: f, Suffixes: suffixes}
}

func (s *SuffixFallback) Name() string {
	return s.Fetcher.Name() + "+suffix-fallback"
}

func (s *SuffixFallback) FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.Bar, error) {
	candidates := []string{symbol}
	if !strings.Contains(symbol, ".") {
		for _, suf := range s.Suffixes {
			candidates = append(candidates, symbol+suf)
		}
	}

	var lastErr error
	for _, cand := range candidates {
		bars, err := s.Fetcher.FetchDailyBars(ctx, cand, period)
		if err == nil && len(bars) > 0 {
			return bars, nil
		}
		if err != nil {
			lastErr = err
			log.Printf("[WARN] fetch %s failed: %v", cand, err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if lastErr == nil {
		lastErr = ErrNoData
	}
	return nil, fmt.Errorf("all candidates for %q failed: %w", symbol, lastErr)
}
