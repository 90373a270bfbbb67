package model

import "time"

// ForecastPoint is one predicted value and the calendar date it is shown against.
type ForecastPoint struct {
	Day   int
	Date  time.Time
	Price float64
}

// ForecastRun is everything a single pipeline run produced.
type ForecastRun struct {
	RunAt         time.Time
	LastDate      time.Time // date of the most recent observed record
	TodayPrice    float64
	Points        []ForecastPoint
	TrainingRows  int
	JoinDropped   int
	WarmupDropped int
}
