// Package cron runs purges periodically in one process using robfig/cron/v3.
// Runs never overlap: a tick that fires while a purge is still running is skipped.
package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
)

// Job runs one purge and returns its result code.
type Job func(ctx context.Context) errcode.Code

// Scheduler runs a single Job on a cron expression.
type Scheduler struct {
	cron    *cron.Cron
	logger  *logger.Logger
	parser  cron.Parser
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	entryID cron.EntryID
	mu      sync.RWMutex

	runs     int
	lastCode errcode.Code
	lastRun  time.Time
}

// NewScheduler creates a scheduler. Expressions accept an optional seconds
// field and descriptors such as "@every 6h" or "@daily".
func NewScheduler(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	parser := newParser()
	adapter := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		logger: log,
		parser: parser,
	}
}

// Schedule registers job under expression. Only one job can be scheduled.
func (s *Scheduler) Schedule(expression string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		return fmt.Errorf("a purge job is already scheduled")
	}
	if err := validateCronExpression(expression, s.parser); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(expression, func() { s.executeJob(job) })
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	s.entryID = entryID

	s.logger.Info("purge job scheduled",
		logger.Field{Key: "schedule", Value: expression},
		logger.Field{Key: "entry_id", Value: int(entryID)})
	return nil
}

// Start starts the cron scheduler. It stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	if s.entryID == 0 {
		return fmt.Errorf("no purge job scheduled")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	s.cron.Start()
	s.logger.Info("cron scheduler started")

	go func() {
		<-s.ctx.Done()
		<-s.cron.Stop().Done()
		s.logger.Info("cron scheduler stopped")
	}()
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return fmt.Errorf("scheduler not started")
	}
	s.started = false
	s.cancel()
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	return nil
}

// Run schedules job, starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context, expression string, job Job) error {
	if err := s.Schedule(expression, job); err != nil {
		return err
	}
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// NextRun returns the next activation time, or the zero time when nothing is scheduled.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// Stats returns the number of completed runs and the result of the last one.
func (s *Scheduler) Stats() (runs int, lastCode errcode.Code, lastRun time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs, s.lastCode, s.lastRun
}
