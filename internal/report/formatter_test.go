package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldcast/internal/model"
)

func sampleRun() *model.ForecastRun {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	run := &model.ForecastRun{
		RunAt:         now,
		LastDate:      time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		TodayPrice:    7425.126,
		TrainingRows:  1500,
		JoinDropped:   12,
		WarmupDropped: 19,
	}
	for i := 1; i <= 7; i++ {
		run.Points = append(run.Points, model.ForecastPoint{
			Day: i, Date: now.AddDate(0, 0, i), Price: 7400 + float64(i)*1.25,
		})
	}
	return run
}

func TestFormatForecast(t *testing.T) {
	out := FormatForecast(sampleRun(), DefaultOptions())
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 11)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "Today's Gold Price (₹/gram incl GST): ₹7425.13", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Next 7 Days Gold Price Prediction (₹/gram incl GST):", lines[3])
	assert.Equal(t, "Day 1 (2026-10-20): ₹7401.25", lines[4])
	assert.Equal(t, "Day 7 (2026-10-26): ₹7408.75", lines[10])
}

func TestWriteForecast_CustomLabels(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Commodity: "Silver", Currency: "$", Unit: "oz", TaxLabel: "pre-tax"}
	require.NoError(t, WriteForecast(&buf, sampleRun(), opts))

	assert.Contains(t, buf.String(), "Today's Silver Price ($/oz pre-tax): $7425.13")
}

func TestFormatSummary(t *testing.T) {
	s := FormatSummary(sampleRun())
	assert.Contains(t, s, "2026-10-16")
	assert.Contains(t, s, "trained on 1500 rows")
	assert.Contains(t, s, "join dropped 12")
	assert.Contains(t, s, "warmup dropped 19")

	assert.Contains(t, FormatSummary(&model.ForecastRun{}), "n/a")
}
