// Package forecast rolls a one-step model forward over several days.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"goldcast/internal/model"
)

// DefaultHorizon is the number of days predicted per run.
const DefaultHorizon = 7

// Predictor maps one feature vector to the next day's price.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// Windows are the trailing-mean lengths the state was built with.
type Windows struct {
	Short int
	Long  int
}

// State is the feature vector fed to the model. It is a value; Advance returns a new one.
type State struct {
	Price     float64
	ShortMean float64
	LongMean  float64
}

// StateFrom takes the three features of an observed record.
func StateFrom(r model.Record) State {
	return State{Price: r.TaxAdjusted, ShortMean: r.ShortMean, LongMean: r.LongMean}
}

// Vector returns the features in training order.
func (s State) Vector() []float64 {
	return []float64{s.Price, s.ShortMean, s.LongMean}
}

// Advance folds pred into both means as mean' = (mean*(n-1) + pred) / n and makes pred the price.
// This is not a true rolling mean: the value leaving the window is approximated by the old mean.
func (s State) Advance(pred float64, w Windows) State {
	return State{
		Price:     pred,
		ShortMean: (s.ShortMean*float64(w.Short-1) + pred) / float64(w.Short),
		LongMean:  (s.LongMean*float64(w.Long-1) + pred) / float64(w.Long),
	}
}

// Run predicts horizon values, feeding each prediction back through Advance.
func Run(p Predictor, start State, horizon int, w Windows) ([]float64, error) {
	if horizon <= 0 {
		return nil, errors.New("horizon must be positive")
	}
	if w.Short <= 0 || w.Long <= 0 {
		return nil, errors.New("windows must be positive")
	}
	out := make([]float64, 0, horizon)
	state := start
	for i := 1; i <= horizon; i++ {
		pred, err := p.Predict(state.Vector())
		if err != nil {
			return out, fmt.Errorf("predict day %d: %w", i, err)
		}
		out = append(out, pred)
		state = state.Advance(pred, w)
	}
	return out, nil
}

// Points labels predictions with now+1, now+2, ... calendar days. Weekends and holidays are not skipped.
func Points(now time.Time, prices []float64) []model.ForecastPoint {
	points := make([]model.ForecastPoint, len(prices))
	for i, p := range prices {
		points[i] = model.ForecastPoint{
			Day:   i + 1,
			Date:  now.AddDate(0, 0, i+1),
			Price: p,
		}
	}
	return points
}
