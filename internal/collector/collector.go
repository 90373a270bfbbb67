package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"goldcast/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64                  // base price for generated bars when a symbol has no fixed data
	Bars  map[string][]model.OHLCV // fixed bars per symbol
	Err   error
	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, symbol)
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	if m.Price == 0 {
		return nil, nil
	}
	return generateMockBars(m.Price, start, end), nil
}

func generateMockBars(basePrice float64, start, end time.Time) []model.OHLCV {
	var bars []model.OHLCV
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%40-20)*0.001)
		bars = append(bars, model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	return bars
}

// Collector fetches the reference and exchange-rate series and joins them by date.
type Collector struct {
	Fetcher         Fetcher
	ReferenceSymbol string
	RateSymbol      string
	Start           time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, referenceSymbol, rateSymbol string, start time.Time) *Collector {
	return &Collector{
		Fetcher:         fetcher,
		ReferenceSymbol: referenceSymbol,
		RateSymbol:      rateSymbol,
		Start:           start,
	}
}

// Collect fetches both series from Start through now and inner-joins them.
// Empty series are not an error here.
func (c *Collector) Collect(ctx context.Context, now time.Time) (*model.JoinResult, error) {
	refBars, err := c.Fetcher.FetchDailyBars(ctx, c.ReferenceSymbol, c.Start, now)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.ReferenceSymbol, err)
	}
	rateBars, err := c.Fetcher.FetchDailyBars(ctx, c.RateSymbol, c.Start, now)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.RateSymbol, err)
	}
	log.Printf("[INFO] fetched %d %s bars and %d %s bars from %s",
		len(refBars), c.ReferenceSymbol, len(rateBars), c.RateSymbol, c.Fetcher.Name())

	res := Join(refBars, rateBars)
	if res.ReferenceOnly > 0 || res.RateOnly > 0 {
		log.Printf("[WARN] join dropped %d %s-only and %d %s-only dates",
			res.ReferenceOnly, c.ReferenceSymbol, res.RateOnly, c.RateSymbol)
	}
	return res, nil
}

// TradingDate truncates t to its calendar date in t's own location, returned as UTC midnight.
func TradingDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// closesByDate keys closes by trading date; a later bar on the same date wins.
func closesByDate(bars []model.OHLCV) map[time.Time]float64 {
	out := make(map[time.Time]float64, len(bars))
	for _, b := range bars {
		out[TradingDate(b.Time)] = b.Close
	}
	return out
}

// Join keeps only dates present in both series, ordered by date.
func Join(ref, rate []model.OHLCV) *model.JoinResult {
	refCloses := closesByDate(ref)
	rateCloses := closesByDate(rate)

	res := &model.JoinResult{}
	for date, c := range refCloses {
		r, ok := rateCloses[date]
		if !ok {
			res.ReferenceOnly++
			continue
		}
		res.Rows = append(res.Rows, model.JoinedBar{Date: date, ReferenceClose: c, ExchangeRate: r})
	}
	for date := range rateCloses {
		if _, ok := refCloses[date]; !ok {
			res.RateOnly++
		}
	}
	sort.Slice(res.Rows, func(i, j int) bool { return res.Rows[i].Date.Before(res.Rows[j].Date) })
	return res
}
