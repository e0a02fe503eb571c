package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chipchart/internal/fetcher"
	"chipchart/internal/model"
	"chipchart/internal/store"
)

func TestRefreshNow_PopulatesStore(t *testing.T) {
	st, err := store.NewSQLiteStore(t.TempDir() + "/bars.db")
	require.NoError(t, err)
	defer st.Close()

	bars := []model.Bar{
		{Time: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Open: 100, High: 103, Low: 99, Close: 102, Volume: 1500},
		{Time: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), Open: 102, High: 104, Low: 101, Close: 103, Volume: 1800},
	}
	mock := &fetcher.MockFetcher{Bars: bars}

	r := NewRefresher(context.Background(), mock, st, []string{"2330.TW", "3167.TW"}, fetcher.Period6Mo)
	r.RefreshNow()

	assert.Equal(t, []string{"2330.TW", "3167.TW"}, mock.Fetched)
	for _, symbol := range []string{"2330.TW", "3167.TW"} {
		got, err := st.LoadBars(symbol, 0)
		require.NoError(t, err)
		assert.Len(t, got, 2, symbol)
	}
}

func TestRefreshNow_FailureDoesNotAbort(t *testing.T) {
	mock := &fetcher.MockFetcher{Err: errors.New("down")}
	r := NewRefresher(context.Background(), mock, store.NewNoopStore(), []string{"A", "B"}, fetcher.Period6Mo)

	r.RefreshNow()
	assert.Len(t, mock.Fetched, 2, "remaining symbols still refresh after a failure")
}

func TestRegister_BadSpec(t *testing.T) {
	r := NewRefresher(context.Background(), &fetcher.MockFetcher{}, store.NewNoopStore(), nil, fetcher.Period6Mo)
	assert.Error(t, r.Register("not a cron spec"))
	assert.NoError(t, r.Register("0 30 14 * * 1-5"))
}
