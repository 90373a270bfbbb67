package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldcast/internal/model"
)

func run(at time.Time, base float64) *model.ForecastRun {
	r := &model.ForecastRun{
		RunAt:         at,
		LastDate:      at.AddDate(0, 0, -1),
		TodayPrice:    base,
		TrainingRows:  100,
		JoinDropped:   3,
		WarmupDropped: 19,
	}
	for i := 1; i <= 7; i++ {
		r.Points = append(r.Points, model.ForecastPoint{Day: i, Date: at.AddDate(0, 0, i), Price: base + float64(i)})
	}
	return r
}

func TestSQLiteRecorder(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "forecasts.db"))
	require.NoError(t, err)
	defer rec.Close()

	day1 := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	require.NoError(t, rec.RecordRun(run(day1, 7000)))
	require.NoError(t, rec.RecordRun(run(day2, 7100)))

	t.Run("stores one row per run", func(t *testing.T) {
		var n int
		require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM forecast_runs`).Scan(&n))
		assert.Equal(t, 2, n)
		require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM forecast_points`).Scan(&n))
		assert.Equal(t, 14, n)

		var lastDate string
		var warmup int
		require.NoError(t, rec.db.QueryRow(`SELECT last_date, warmup_dropped FROM forecast_runs ORDER BY id LIMIT 1`).Scan(&lastDate, &warmup))
		assert.Equal(t, "2026-10-18", lastDate)
		assert.Equal(t, 19, warmup)
	})

	t.Run("predictions for a target date across runs", func(t *testing.T) {
		// 2026-10-22 is day 3 of the first run and day 2 of the second.
		got, err := rec.PredictionsFor(time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, []float64{7003, 7102}, got)
	})

	t.Run("reopening keeps history", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reopen.db")
		first, err := NewSQLiteRecorder(path)
		require.NoError(t, err)
		require.NoError(t, first.RecordRun(run(day1, 1)))
		require.NoError(t, first.Close())

		second, err := NewSQLiteRecorder(path)
		require.NoError(t, err)
		defer second.Close()
		got, err := second.PredictionsFor(day1.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, []float64{2}, got)
	})
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordRun(run(time.Now(), 1)))
	assert.NoError(t, rec.Close())
}
