package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chipchart/internal/model"
)

func TestGetOrCompute_CachesResult(t *testing.T) {
	c := New(time.Minute)
	var calls int32

	compute := func() (*model.Result, error) {
		atomic.AddInt32(&calls, 1)
		return &model.Result{Symbol: "2330.TW", POCPrice: 585}, nil
	}

	first, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrCompute_SingleFlight(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	gate := make(chan struct{})

	compute := func() (*model.Result, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return &model.Result{Symbol: "2330.TW"}, nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]*model.Result, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			res, err := c.GetOrCompute("k", compute)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	// Give every worker time to pile onto the same key, then release.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one computation per key")
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := New(time.Minute)
	var calls int32

	boom := errors.New("fetch failed")
	failing := func() (*model.Result, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	_, err := c.GetOrCompute("k", failing)
	assert.ErrorIs(t, err, boom)

	res, err := c.GetOrCompute("k", func() (*model.Result, error) {
		atomic.AddInt32(&calls, 1)
		return &model.Result{Symbol: "OK"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "OK", res.Symbol)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "failure must not stick")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "2330.TW|6mo|tick|0", Key("2330.tw", "6mo", "tick", 0))
	assert.NotEqual(t, Key("2330.TW", "6mo", "tick", 0), Key("2330.TW", "1y", "tick", 0))
	assert.NotEqual(t, Key("2330.TW", "6mo", "fixed", 50), Key("2330.TW", "6mo", "fixed", 100))
}

func TestFlush(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	compute := func() (*model.Result, error) {
		atomic.AddInt32(&calls, 1)
		return &model.Result{}, nil
	}

	_, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	c.Flush()
	_, err = c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
