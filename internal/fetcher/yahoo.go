package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"chipchart/internal/model"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooFetcher fetches daily bars from the Yahoo Finance v8 chart API.
type YahooFetcher struct {
	client *resty.Client
}

// NewYahooFetcher creates a Yahoo fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	client := resty.New().
		SetBaseURL(yahooChartURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{client: client}
}

// SetBaseURL overrides the chart endpoint, for tests.
func (f *YahooFetcher) SetBaseURL(base string) {
	f.client.SetBaseURL(base)
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API. Quote
// fields are pointers because holidays come back as JSON nulls.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, period Period) ([]model.Bar, error) {
	var chart yahooChart
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    string(period),
		}).
		SetResult(&chart).
		ForceContentType("application/json").
		Get("/" + url.PathEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo fetch %s: status %d, body: %s", symbol, resp.StatusCode(), resp.String())
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 ||
		len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := deref(quote.Open, i)
		h := deref(quote.High, i)
		l := deref(quote.Low, i)
		c := deref(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: deref(quote.Volume, i),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func deref(vs []*float64, i int) float64 {
	if i >= len(vs) || vs[i] == nil {
		return 0
	}
	return *vs[i]
}
