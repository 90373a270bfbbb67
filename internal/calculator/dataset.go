package calculator

import (
	"errors"
	"fmt"

	"goldcast/internal/model"
)

// ErrInsufficientData is returned when too few joined rows exist to fill the long window.
var ErrInsufficientData = errors.New("insufficient data")

// Params controls feature derivation.
type Params struct {
	UnitMass    float64
	TaxRate     float64
	ShortWindow int
	LongWindow  int
}

// DefaultParams mirrors the gold-in-rupees setup: per gram, 3% tax, 5 and 20 day means.
func DefaultParams() Params {
	return Params{
		UnitMass:    GramsPerTroyOunce,
		TaxRate:     DefaultTaxRate,
		ShortWindow: 5,
		LongWindow:  20,
	}
}

func (p Params) validate() error {
	if p.UnitMass <= 0 {
		return errors.New("unit mass must be positive")
	}
	if p.ShortWindow <= 0 || p.LongWindow <= 0 {
		return errors.New("windows must be positive")
	}
	return nil
}

// BuildDataset derives prices and trailing means for every joined row and drops
// the rows that lack either mean. With a long window of 20 that is always the first 19 rows.
func BuildDataset(join *model.JoinResult, p Params) (*model.Dataset, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	ds := &model.Dataset{JoinDropped: join.ReferenceOnly + join.RateOnly}

	n := len(join.Rows)
	taxed := make([]float64, n)
	perUnit := make([]float64, n)
	for i, row := range join.Rows {
		perUnit[i] = PricePerUnit(row.ReferenceClose, row.ExchangeRate, p.UnitMass)
		taxed[i] = TaxAdjusted(perUnit[i], p.TaxRate)
	}
	short, shortOK := RollingMean(taxed, p.ShortWindow)
	long, longOK := RollingMean(taxed, p.LongWindow)

	for i, row := range join.Rows {
		if !shortOK[i] || !longOK[i] {
			ds.WarmupDropped++
			continue
		}
		ds.Records = append(ds.Records, model.Record{
			Date:           row.Date,
			ReferenceClose: row.ReferenceClose,
			ExchangeRate:   row.ExchangeRate,
			PricePerUnit:   perUnit[i],
			TaxAdjusted:    taxed[i],
			ShortMean:      short[i],
			LongMean:       long[i],
		})
	}
	if len(ds.Records) == 0 {
		return ds, fmt.Errorf("%w: %d joined rows, need at least %d", ErrInsufficientData, n, max(p.ShortWindow, p.LongWindow))
	}
	return ds, nil
}

// TrainingSet pairs each record's features with the next record's tax-adjusted price.
// The last record has no target and is left out.
func TrainingSet(ds *model.Dataset) (x [][]float64, y []float64, err error) {
	if len(ds.Records) < 2 {
		return nil, nil, fmt.Errorf("%w: %d records, need at least 2 to form a training pair", ErrInsufficientData, len(ds.Records))
	}
	n := len(ds.Records) - 1
	x = make([][]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = ds.Records[i].Features()
		y[i] = ds.Records[i+1].TaxAdjusted
	}
	return x, y, nil
}
