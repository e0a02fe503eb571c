package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"chipchart/internal/analyzer"
	"chipchart/internal/cache"
	"chipchart/internal/fetcher"
	"chipchart/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// analysisResponse is the JSON form of model.Result. Indicator values use
// pointers so undefined (NaN) entries marshal as null instead of breaking
// the encoder.
type analysisResponse struct {
	Symbol         string                `json:"symbol"`
	Period         string                `json:"period"`
	Mode           string                `json:"mode"`
	Dates          []string              `json:"dates"`
	Edges          []float64             `json:"edges"`
	Histogram      []float64             `json:"histogram"`
	GridCapped     bool                  `json:"grid_capped"`
	POCPrice       float64               `json:"poc_price"`
	POCBucket      int                   `json:"poc_bucket"`
	MovingAverages map[string][]*float64 `json:"moving_averages"`
	BollingerUpper []*float64            `json:"bb_upper"`
	BollingerLower []*float64            `json:"bb_lower"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symbol := q.Get("symbol")
	if symbol == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbol is required"})
		return
	}
	period, err := fetcher.ParsePeriod(q.Get("period"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	modeStr := q.Get("mode")
	if modeStr == "" {
		modeStr = s.cfg.Profile.Mode
	}
	mode, err := analyzer.ParseMode(modeStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	buckets := 0
	if v := q.Get("buckets"); v != "" {
		buckets, err = strconv.Atoi(v)
		if err != nil || buckets < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "buckets must be a positive integer"})
			return
		}
	}

	key := cache.Key(symbol, string(period), string(mode), buckets)
	result, err := s.cache.GetOrCompute(key, func() (*model.Result, error) {
		bars, err := s.loadBars(r.Context(), symbol, period)
		if err != nil {
			return nil, err
		}
		return analyzer.Analyze(symbol, bars, s.analyzerParams(mode, buckets))
	})
	if err != nil {
		s.writeAnalysisError(w, symbol, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result, string(period), string(mode)))
}

// loadBars fetches from the data source and keeps the store warm; when the
// source is down it serves whatever the store has.
func (s *Server) loadBars(ctx context.Context, symbol string, period fetcher.Period) ([]model.Bar, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	bars, err := s.fetcher.FetchDailyBars(ctx, symbol, period)
	if err == nil {
		if saveErr := s.store.SaveBars(symbol, bars); saveErr != nil {
			log.Printf("[WARN] save bars for %s: %v", symbol, saveErr)
		}
		return bars, nil
	}

	stored, loadErr := s.store.LoadBars(symbol, 0)
	if loadErr == nil && len(stored) > 0 {
		log.Printf("[WARN] fetch %s failed (%v), serving %d stored bars", symbol, err, len(stored))
		return stored, nil
	}
	return nil, fmt.Errorf("%w: %v", errFetch, err)
}

// errFetch marks upstream data source failures for status mapping.
var errFetch = errors.New("data source unavailable")

func (s *Server) writeAnalysisError(w http.ResponseWriter, symbol string, err error) {
	switch {
	case errors.Is(err, analyzer.ErrInsufficientData), errors.Is(err, analyzer.ErrInvalidBar):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, errFetch), errors.Is(err, fetcher.ErrNoData):
		log.Printf("[ERROR] analysis %s: %v", symbol, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		log.Printf("[ERROR] analysis %s: %v", symbol, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toResponse(res *model.Result, period, mode string) analysisResponse {
	dates := make([]string, len(res.Dates))
	for i, d := range res.Dates {
		dates[i] = d.Format("2006-01-02")
	}

	mas := make(map[string][]*float64, len(res.Indicators.MovingAverages))
	for _, ma := range res.Indicators.MovingAverages {
		mas[fmt.Sprintf("ma%d", ma.Window)] = nullable(ma.Values)
	}

	return analysisResponse{
		Symbol:         res.Symbol,
		Period:         period,
		Mode:           mode,
		Dates:          dates,
		Edges:          res.Edges,
		Histogram:      res.Histogram,
		GridCapped:     res.GridCapped,
		POCPrice:       res.POCPrice,
		POCBucket:      res.POCBucket,
		MovingAverages: mas,
		BollingerUpper: nullable(res.Indicators.BollingerUpper),
		BollingerLower: nullable(res.Indicators.BollingerLower),
	}
}

// nullable converts NaN entries to nil so they serialize as JSON null.
func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if !math.IsNaN(values[i]) {
			v := values[i]
			out[i] = &v
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}
