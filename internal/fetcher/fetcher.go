package fetcher

import (
	"context"
	"errors"
	"fmt"

	"chipchart/internal/model"
)

// ErrNoData means the source answered but returned no usable bars.
var ErrNoData = errors.New("fetcher: no data returned")

// Period is a historical window descriptor in the data source's vocabulary.
type Period string

const (
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
)

// ParsePeriod validates a period string. Empty means the 6-month default.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return Period6Mo, nil
	case Period3Mo, Period6Mo, Period1Y, Period2Y:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unsupported period %q", s)
	}
}

// Fetcher fetches a time-ordered daily bar series for a symbol.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.Bar, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars    []model.Bar
	Err     error
	Fetched []string // symbols requested, in order
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, _ Period) ([]model.Bar, error) {
	m.Fetched = append(m.Fetched, symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}
