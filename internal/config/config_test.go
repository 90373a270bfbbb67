package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "GC=F", cfg.DataSource.ReferenceSymbol)
	assert.Equal(t, "USDINR=X", cfg.DataSource.RateSymbol)
	start, err := cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "0.03", cfg.Pricing.TaxRate.String())
	assert.InDelta(t, 0.03, cfg.TaxRate(), 1e-15)
	assert.Equal(t, 31.1034768, cfg.Pricing.UnitMass)
	assert.Equal(t, 5, cfg.Features.ShortWindow)
	assert.Equal(t, 20, cfg.Features.LongWindow)
	assert.Equal(t, 100, cfg.Model.Trees)
	assert.Equal(t, int64(42), cfg.Model.Seed)
	assert.Equal(t, 7, cfg.Forecast.Horizon)
	assert.Empty(t, cfg.Schedule.Cron)
	assert.Empty(t, cfg.Database.SQLitePath)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
data_source:
  reference_symbol: "SI=F"
  start_date: "2022-06-01"
pricing:
  tax_rate: 0.18
  currency: "$"
model:
  trees: 10
forecast:
  horizon: 3
schedule:
  cron: "0 30 18 * * 1-5"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "SI=F", cfg.DataSource.ReferenceSymbol)
	assert.Equal(t, "USDINR=X", cfg.DataSource.RateSymbol)
	assert.Equal(t, "0.18", cfg.Pricing.TaxRate.String())
	assert.Equal(t, "$", cfg.Pricing.Currency)
	assert.Equal(t, 10, cfg.Model.Trees)
	assert.Equal(t, 3, cfg.Forecast.Horizon)
	assert.Equal(t, "0 30 18 * * 1-5", cfg.Schedule.Cron)
}

func TestLoad_ZeroTaxRateIsKept(t *testing.T) {
	cfg, err := Load(writeConfig(t, "pricing:\n  tax_rate: 0\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Pricing.TaxRate.IsZero())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GOLDCAST_START_DATE", "2023-01-02")
	t.Setenv("GOLDCAST_TAX_RATE", "0.05")
	t.Setenv("GOLDCAST_HORIZON", "14")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load(writeConfig(t, "forecast:\n  horizon: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, "2023-01-02", cfg.DataSource.StartDate)
	assert.Equal(t, "0.05", cfg.Pricing.TaxRate.String())
	assert.Equal(t, 14, cfg.Forecast.Horizon)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)

	t.Setenv("GOLDCAST_HORIZON", "soon")
	_, err = Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "pricing:\n  tax_rate: lots\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"bad start date":   func(c *Config) { c.DataSource.StartDate = "01/01/2020" },
		"same symbols":     func(c *Config) { c.DataSource.RateSymbol = c.DataSource.ReferenceSymbol },
		"negative tax":     func(c *Config) { c.Pricing.TaxRate.Decimal = c.Pricing.TaxRate.Neg() },
		"zero unit mass":   func(c *Config) { c.Pricing.UnitMass = -1 },
		"short over long":  func(c *Config) { c.Features.ShortWindow = 30 },
		"negative horizon": func(c *Config) { c.Forecast.Horizon = -1 },
		"bad cron":         func(c *Config) { c.Schedule.Cron = "every day" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
