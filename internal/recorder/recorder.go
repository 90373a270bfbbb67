package recorder

import "goldcast/internal/model"

// Recorder persists forecast history for later comparison with realized prices.
type Recorder interface {
	RecordRun(run *model.ForecastRun) error
	Close() error
}
