package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// JoinedBar is one calendar date present in both the reference and the rate series.
type JoinedBar struct {
	Date           time.Time
	ReferenceClose float64 // commodity close in the reference currency
	ExchangeRate   float64 // local currency units per reference unit
}

// JoinResult is the inner join of the two series plus what the join discarded.
type JoinResult struct {
	Rows          []JoinedBar
	ReferenceOnly int // dates only the reference series had
	RateOnly      int // dates only the rate series had
}
