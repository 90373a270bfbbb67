package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"goldcast/internal/model"
)

// Options controls the labels in the printed report.
type Options struct {
	Commodity string // e.g. "Gold"
	Currency  string // symbol printed before every amount
	Unit      string // unit of mass the price is quoted per
	TaxLabel  string // e.g. "incl GST"
}

// DefaultOptions prints rupees per gram including GST.
func DefaultOptions() Options {
	return Options{Commodity: "Gold", Currency: "₹", Unit: "gram", TaxLabel: "incl GST"}
}

func (o Options) quote() string {
	return fmt.Sprintf("%s/%s %s", o.Currency, o.Unit, o.TaxLabel)
}

// money rounds to two decimals.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatForecast renders today's price and every dated prediction.
func FormatForecast(run *model.ForecastRun, opts Options) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\nToday's %s Price (%s): %s%s\n",
		opts.Commodity, opts.quote(), opts.Currency, money(run.TodayPrice)))

	b.WriteString(fmt.Sprintf("\nNext %d Days %s Price Prediction (%s):\n",
		len(run.Points), opts.Commodity, opts.quote()))
	for _, p := range run.Points {
		b.WriteString(fmt.Sprintf("Day %d (%s): %s%s\n",
			p.Day, p.Date.Format(time.DateOnly), opts.Currency, money(p.Price)))
	}
	return b.String()
}

// WriteForecast writes FormatForecast to w.
func WriteForecast(w io.Writer, run *model.ForecastRun, opts Options) error {
	_, err := io.WriteString(w, FormatForecast(run, opts))
	return err
}

// FormatSummary is a one-line description of a run for the log.
func FormatSummary(run *model.ForecastRun) string {
	last := "n/a"
	if n := len(run.Points); n > 0 {
		last = money(run.Points[n-1].Price)
	}
	return fmt.Sprintf("last observation %s, today %s, day %d %s, trained on %d rows (join dropped %d, warmup dropped %d)",
		run.LastDate.Format(time.DateOnly), money(run.TodayPrice), len(run.Points), last,
		run.TrainingRows, run.JoinDropped, run.WarmupDropped)
}
