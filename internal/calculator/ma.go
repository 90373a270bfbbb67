package calculator

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	return stat.Mean(prices[len(prices)-period:], nil), nil
}

// RollingMean computes the trailing mean of values over window at every index.
// ok[i] is false until a full window is available; no partial windows are averaged.
func RollingMean(values []float64, window int) (means []float64, ok []bool) {
	means = make([]float64, len(values))
	ok = make([]bool, len(values))
	if window <= 0 {
		return means, ok
	}
	for i := window - 1; i < len(values); i++ {
		means[i] = stat.Mean(values[i-window+1:i+1], nil)
		ok[i] = true
	}
	return means, ok
}
