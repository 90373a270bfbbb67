package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL         string `yaml:"base_url"`
		APIKey          string `yaml:"api_key"`
		ReferenceSymbol string `yaml:"reference_symbol"`
		RateSymbol      string `yaml:"rate_symbol"`
		StartDate       string `yaml:"start_date"`
	} `yaml:"data_source"`
	Pricing struct {
		TaxRate   *Decimal `yaml:"tax_rate"`
		UnitMass  float64  `yaml:"unit_mass"`
		Commodity string   `yaml:"commodity"`
		Currency  string   `yaml:"currency"`
		Unit      string   `yaml:"unit"`
		TaxLabel  string   `yaml:"tax_label"`
	} `yaml:"pricing"`
	Features struct {
		ShortWindow int `yaml:"short_window"`
		LongWindow  int `yaml:"long_window"`
	} `yaml:"features"`
	Model struct {
		Trees           int   `yaml:"trees"`
		Seed            int64 `yaml:"seed"`
		MinSamplesSplit int   `yaml:"min_samples_split"`
		MinSamplesLeaf  int   `yaml:"min_samples_leaf"`
		MaxDepth        int   `yaml:"max_depth"`
		Workers         int   `yaml:"workers"`
	} `yaml:"model"`
	Forecast struct {
		Horizon int `yaml:"horizon"`
	} `yaml:"forecast"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: every field has a default.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("GOLDCAST_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("GOLDCAST_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("GOLDCAST_START_DATE"); v != "" {
		cfg.DataSource.StartDate = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("GOLDCAST_TAX_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("GOLDCAST_TAX_RATE: %w", err)
		}
		cfg.Pricing.TaxRate = &Decimal{rate}
	}
	if v := os.Getenv("GOLDCAST_HORIZON"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("GOLDCAST_HORIZON: %w", err)
		}
		cfg.Forecast.Horizon = h
	}
	if v := os.Getenv("GOLDCAST_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.ReferenceSymbol == "" {
		cfg.DataSource.ReferenceSymbol = "GC=F"
	}
	if cfg.DataSource.RateSymbol == "" {
		cfg.DataSource.RateSymbol = "USDINR=X"
	}
	if cfg.DataSource.StartDate == "" {
		cfg.DataSource.StartDate = "2020-01-01"
	}
	if cfg.Pricing.TaxRate == nil {
		cfg.Pricing.TaxRate = &Decimal{decimal.RequireFromString("0.03")}
	}
	if cfg.Pricing.UnitMass == 0 {
		cfg.Pricing.UnitMass = 31.1034768
	}
	if cfg.Pricing.Commodity == "" {
		cfg.Pricing.Commodity = "Gold"
	}
	if cfg.Pricing.Currency == "" {
		cfg.Pricing.Currency = "₹"
	}
	if cfg.Pricing.Unit == "" {
		cfg.Pricing.Unit = "gram"
	}
	if cfg.Pricing.TaxLabel == "" {
		cfg.Pricing.TaxLabel = "incl GST"
	}
	if cfg.Features.ShortWindow == 0 {
		cfg.Features.ShortWindow = 5
	}
	if cfg.Features.LongWindow == 0 {
		cfg.Features.LongWindow = 20
	}
	if cfg.Model.Trees == 0 {
		cfg.Model.Trees = 100
	}
	if cfg.Model.Seed == 0 {
		cfg.Model.Seed = 42
	}
	if cfg.Model.MinSamplesSplit == 0 {
		cfg.Model.MinSamplesSplit = 2
	}
	if cfg.Model.MinSamplesLeaf == 0 {
		cfg.Model.MinSamplesLeaf = 1
	}
	if cfg.Forecast.Horizon == 0 {
		cfg.Forecast.Horizon = 7
	}

	return cfg, nil
}

// Start parses the configured start date.
func (c *Config) Start() (time.Time, error) {
	return time.Parse(time.DateOnly, c.DataSource.StartDate)
}

// TaxRate returns the configured tax rate as a float.
func (c *Config) TaxRate() float64 {
	return c.Pricing.TaxRate.InexactFloat64()
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := c.Start(); err != nil {
		return fmt.Errorf("data_source.start_date must be YYYY-MM-DD: %w", err)
	}
	if c.DataSource.ReferenceSymbol == c.DataSource.RateSymbol {
		return fmt.Errorf("data_source.reference_symbol and rate_symbol must differ")
	}
	if c.Pricing.TaxRate.IsNegative() {
		return fmt.Errorf("pricing.tax_rate must not be negative")
	}
	if c.Pricing.UnitMass <= 0 {
		return fmt.Errorf("pricing.unit_mass must be positive")
	}
	if c.Features.ShortWindow < 1 || c.Features.LongWindow < 1 {
		return fmt.Errorf("features windows must be positive")
	}
	if c.Features.ShortWindow > c.Features.LongWindow {
		return fmt.Errorf("features.short_window must not exceed long_window")
	}
	if c.Model.Trees < 1 {
		return fmt.Errorf("model.trees must be positive")
	}
	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("forecast.horizon must be positive")
	}
	if c.Schedule.Cron != "" {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
	}
	return nil
}
