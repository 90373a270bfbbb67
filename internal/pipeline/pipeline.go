// Package pipeline wires fetching, feature derivation, model fitting and the
// forecast loop into one run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"goldcast/internal/calculator"
	"goldcast/internal/forecast"
	"goldcast/internal/forest"
	"goldcast/internal/model"
	"goldcast/internal/recorder"
	"goldcast/internal/report"
)

// Source yields the joined reference and rate series up to now.
type Source interface {
	Collect(ctx context.Context, now time.Time) (*model.JoinResult, error)
}

// Trainer fits a one-step model on a feature matrix and target vector.
type Trainer interface {
	Train(ctx context.Context, x [][]float64, y []float64) (forecast.Predictor, error)
}

// ForestTrainer fits a random forest.
type ForestTrainer struct {
	Config forest.Config
}

func (t ForestTrainer) Train(ctx context.Context, x [][]float64, y []float64) (forecast.Predictor, error) {
	f, err := forest.Fit(ctx, x, y, t.Config)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Runner executes the full forecast once per Run call.
type Runner struct {
	Source   Source
	Trainer  Trainer
	Recorder recorder.Recorder
	Now      func() time.Time
	Out      io.Writer
	Params   calculator.Params
	Horizon  int
	Report   report.Options
}

// Run fetches, derives features, fits, forecasts, prints, and records.
// A failed record is logged, not returned.
func (r *Runner) Run(ctx context.Context) (*model.ForecastRun, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	runAt := now()

	join, err := r.Source.Collect(ctx, runAt)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	ds, err := calculator.BuildDataset(join, r.Params)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	x, y, err := calculator.TrainingSet(ds)
	if err != nil {
		return nil, fmt.Errorf("training set: %w", err)
	}

	log.Printf("[INFO] training on %d rows", len(x))
	predictor, err := r.Trainer.Train(ctx, x, y)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	last, _ := ds.Last()
	windows := forecast.Windows{Short: r.Params.ShortWindow, Long: r.Params.LongWindow}
	prices, err := forecast.Run(predictor, forecast.StateFrom(last), r.Horizon, windows)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	run := &model.ForecastRun{
		RunAt:         runAt,
		LastDate:      last.Date,
		TodayPrice:    last.TaxAdjusted,
		Points:        forecast.Points(runAt, prices),
		TrainingRows:  len(x),
		JoinDropped:   ds.JoinDropped,
		WarmupDropped: ds.WarmupDropped,
	}

	if r.Out != nil {
		if err := report.WriteForecast(r.Out, run, r.Report); err != nil {
			return run, fmt.Errorf("write report: %w", err)
		}
	}
	log.Printf("[INFO] %s", report.FormatSummary(run))

	if r.Recorder != nil {
		if err := r.Recorder.RecordRun(run); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}
	}
	return run, nil
}
