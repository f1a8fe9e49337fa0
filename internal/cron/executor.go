package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
)

// executeJob runs job once and records its result.
func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	code := errcode.UnknownError

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled purge panic recovered", fmt.Errorf("panic: %v", r))
			code = errcode.UnknownError
		}

		s.mu.Lock()
		s.runs++
		s.lastCode = code
		s.lastRun = start
		s.mu.Unlock()

		s.logger.Info("scheduled purge finished",
			logger.Field{Key: "code", Value: int(code)},
			logger.Field{Key: "result", Value: code.String()},
			logger.Field{Key: "duration", Value: time.Since(start).String()})
	}()

	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}

	code = job(ctx)
}
