package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"goldcast/internal/model"

	"github.com/robfig/cron/v3"
)

// Job is one forecast run.
type Job interface {
	Run(ctx context.Context) (*model.ForecastRun, error)
}

// Scheduler repeats a Job on a cron schedule. Overlapping runs are skipped.
type Scheduler struct {
	Cron *cron.Cron
	Job  Job
	Ctx  context.Context

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new Scheduler. Specs take a leading seconds field.
func NewScheduler(ctx context.Context, job Job) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Job:  job,
		Ctx:  ctx,
	}
}

// Register adds the forecast task under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.forecastTask); err != nil {
		return fmt.Errorf("register forecast task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the forecast task immediately.
func (s *Scheduler) RunNow() {
	s.forecastTask()
}

func (s *Scheduler) forecastTask() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] previous forecast still running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if err := s.Ctx.Err(); err != nil {
		return
	}
	log.Println("[INFO] running forecast task")
	if _, err := s.Job.Run(s.Ctx); err != nil {
		log.Printf("[ERROR] forecast task: %v", err)
	}
}
