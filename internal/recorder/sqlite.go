package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"goldcast/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists forecast runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS forecast_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			last_date      TEXT NOT NULL,
			today_price    REAL,
			training_rows  INTEGER,
			join_dropped   INTEGER,
			warmup_dropped INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON forecast_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS forecast_points (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES forecast_runs(id) ON DELETE CASCADE,
			day         INTEGER NOT NULL,
			target_date TEXT NOT NULL,
			price       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_points_target ON forecast_points(target_date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run and its points in one transaction.
func (r *SQLiteRecorder) RecordRun(run *model.ForecastRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO forecast_runs
		(timestamp, last_date, today_price, training_rows, join_dropped, warmup_dropped)
		VALUES (?,?,?,?,?,?)`,
		run.RunAt.Unix(), run.LastDate.Format(time.DateOnly), run.TodayPrice,
		run.TrainingRows, run.JoinDropped, run.WarmupDropped,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, p := range run.Points {
		if _, err := tx.Exec(`INSERT INTO forecast_points
			(run_id, day, target_date, price)
			VALUES (?,?,?,?)`,
			runID, p.Day, p.Date.Format(time.DateOnly), p.Price,
		); err != nil {
			return fmt.Errorf("insert point %d: %w", p.Day, err)
		}
	}
	return tx.Commit()
}

// PredictionsFor returns every price ever forecast for date, oldest run first.
func (r *SQLiteRecorder) PredictionsFor(date time.Time) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT p.price FROM forecast_points p
		JOIN forecast_runs f ON f.id = p.run_id
		WHERE p.target_date = ?
		ORDER BY f.timestamp, f.id`, date.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
