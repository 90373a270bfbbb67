package model

import "time"

// Record is the feature-complete view of one trading date.
type Record struct {
	Date           time.Time
	ReferenceClose float64
	ExchangeRate   float64
	PricePerUnit   float64 // local currency per unit mass, before tax
	TaxAdjusted    float64
	ShortMean      float64 // trailing mean of TaxAdjusted over the short window
	LongMean       float64 // trailing mean of TaxAdjusted over the long window
}

// Features returns the model inputs in training order.
func (r Record) Features() []float64 {
	return []float64{r.TaxAdjusted, r.ShortMean, r.LongMean}
}

// Dataset is the cleaned record set with counts of every row dropped on the way.
type Dataset struct {
	Records       []Record
	JoinDropped   int // rows lost to the inner join, both sides
	WarmupDropped int // rows without a full long window
}

// Last returns the most recent record. ok is false for an empty dataset.
func (d *Dataset) Last() (Record, bool) {
	if len(d.Records) == 0 {
		return Record{}, false
	}
	return d.Records[len(d.Records)-1], true
}
