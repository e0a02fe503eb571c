// Package analyzer turns a daily bar series into a volume profile plus the
// indicator series the chart layer draws alongside it.
package analyzer

import (
	"errors"
	"fmt"
	"log"

	"chipchart/internal/indicator"
	"chipchart/internal/model"
	"chipchart/internal/profile"
)

var (
	// ErrInsufficientData means the series is too short for any profile or
	// indicator computation. Distinct from "computed, but all undefined".
	ErrInsufficientData = errors.New("analyzer: not enough bars")
	// ErrInvalidBar means a bar violates price/volume invariants. The whole
	// series is rejected; clamping would silently corrupt volume conservation.
	ErrInvalidBar = errors.New("analyzer: bar violates invariants")
	// ErrUnknownMode means the grid mode is neither "tick" nor "fixed".
	ErrUnknownMode = errors.New("analyzer: unknown grid mode")
)

// Mode selects the price grid strategy.
type Mode string

const (
	// ModeTick builds variable-width buckets from the exchange tick schedule.
	ModeTick Mode = "tick"
	// ModeFixed builds a fixed number of uniform-width buckets.
	ModeFixed Mode = "fixed"
)

// ParseMode validates a grid mode string. An empty string means ModeTick.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTick, "":
		return ModeTick, nil
	case ModeFixed:
		return ModeFixed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// DefaultMinBars is the shortest series worth profiling; below this the
// 20-day indicators are entirely undefined anyway.
const DefaultMinBars = 20

// Params configures one analysis run. Zero values fall back to defaults.
type Params struct {
	Mode            Mode
	BucketCount     int // fixed mode only
	MAWindows       []int
	BollingerWindow int
	BollingerWidth  float64
	TickTable       profile.TickTable
	StepCap         int
	MinBars         int
}

func (p Params) withDefaults() Params {
	if p.Mode == "" {
		p.Mode = ModeTick
	}
	if p.BucketCount <= 0 {
		p.BucketCount = profile.DefaultBucketCount
	}
	if len(p.MAWindows) == 0 {
		p.MAWindows = []int{5, 20, 60}
	}
	if p.BollingerWindow <= 0 {
		p.BollingerWindow = 20
	}
	if p.BollingerWidth <= 0 {
		p.BollingerWidth = 2.0
	}
	if p.TickTable == nil {
		p.TickTable = profile.TWSE
	}
	if p.MinBars <= 0 {
		p.MinBars = DefaultMinBars
	}
	return p
}

// Analyze computes the volume profile and indicator series for one symbol's
// bar series. It is pure and touches no shared state, so concurrent calls
// need no coordination.
func Analyze(symbol string, bars []model.Bar, p Params) (*model.Result, error) {
	p = p.withDefaults()

	if len(bars) < p.MinBars {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(bars), p.MinBars)
	}
	if err := validate(bars); err != nil {
		return nil, err
	}

	low, high := model.PriceRange(bars)
	var grid profile.Grid
	switch p.Mode {
	case ModeTick:
		grid = profile.TickGrid(low, high, p.TickTable, p.StepCap)
	case ModeFixed:
		grid = profile.FixedGrid(low, high, p.BucketCount)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, p.Mode)
	}
	if grid.Capped {
		log.Printf("[WARN] %s: tick grid capped at %d edges before reaching high %.2f; top of range under-covered",
			symbol, len(grid.Edges), high)
	}

	hist := profile.Distribute(bars, grid)
	pocPrice, pocBucket, err := profile.PointOfControl(hist, grid)
	if err != nil {
		return nil, fmt.Errorf("summarize profile: %w", err)
	}

	closes := model.Closes(bars)
	ind := model.Indicators{
		MovingAverages: make([]model.MASeries, 0, len(p.MAWindows)),
	}
	for _, w := range p.MAWindows {
		ind.MovingAverages = append(ind.MovingAverages, model.MASeries{
			Window: w,
			Values: indicator.RollingMean(closes, w),
		})
	}
	bands := indicator.Bollinger(closes, p.BollingerWindow, p.BollingerWidth)
	ind.BollingerUpper = bands.Upper
	ind.BollingerLower = bands.Lower

	return &model.Result{
		Symbol:     symbol,
		Dates:      model.Dates(bars),
		Edges:      grid.Edges,
		Histogram:  hist,
		GridCapped: grid.Capped,
		POCPrice:   pocPrice,
		POCBucket:  pocBucket,
		Indicators: ind,
	}, nil
}

func validate(bars []model.Bar) error {
	for _, b := range bars {
		switch {
		case b.High < b.Low:
			return fmt.Errorf("%w: %s high %.4f below low %.4f",
				ErrInvalidBar, b.Time.Format("2006-01-02"), b.High, b.Low)
		case b.Volume < 0:
			return fmt.Errorf("%w: %s negative volume %.0f",
				ErrInvalidBar, b.Time.Format("2006-01-02"), b.Volume)
		case b.Low <= 0:
			return fmt.Errorf("%w: %s non-positive low %.4f",
				ErrInvalidBar, b.Time.Format("2006-01-02"), b.Low)
		}
	}
	return nil
}
