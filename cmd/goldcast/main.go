package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"goldcast/internal/calculator"
	"goldcast/internal/collector"
	"goldcast/internal/config"
	"goldcast/internal/forest"
	"goldcast/internal/pipeline"
	"goldcast/internal/recorder"
	"goldcast/internal/report"
	"goldcast/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] goldcast starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	start, _ := cfg.Start()

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewHTTPBarFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.DataSource.ReferenceSymbol, cfg.DataSource.RateSymbol, start)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	runner := &pipeline.Runner{
		Source: col,
		Trainer: pipeline.ForestTrainer{Config: forest.Config{
			Trees:           cfg.Model.Trees,
			Seed:            cfg.Model.Seed,
			MinSamplesSplit: cfg.Model.MinSamplesSplit,
			MinSamplesLeaf:  cfg.Model.MinSamplesLeaf,
			MaxDepth:        cfg.Model.MaxDepth,
			Workers:         cfg.Model.Workers,
		}},
		Recorder: rec,
		Out:      os.Stdout,
		Params: calculator.Params{
			UnitMass:    cfg.Pricing.UnitMass,
			TaxRate:     cfg.TaxRate(),
			ShortWindow: cfg.Features.ShortWindow,
			LongWindow:  cfg.Features.LongWindow,
		},
		Horizon: cfg.Forecast.Horizon,
		Report: report.Options{
			Commodity: cfg.Pricing.Commodity,
			Currency:  cfg.Pricing.Currency,
			Unit:      cfg.Pricing.Unit,
			TaxLabel:  cfg.Pricing.TaxLabel,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule.Cron == "" {
		if _, err := runner.Run(ctx); err != nil {
			rec.Close()
			log.Fatalf("[FATAL] forecast: %v", err)
		}
		return
	}

	sched := scheduler.NewScheduler(ctx, runner)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	sched.RunNow()

	log.Printf("[INFO] goldcast is running on %q. Press Ctrl+C to stop.", cfg.Schedule.Cron)
	<-ctx.Done()

	log.Println("[INFO] shutdown signal received, stopping...")
	sched.Stop()
	log.Println("[INFO] goldcast stopped")
}
