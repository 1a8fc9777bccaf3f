// Package jobs runs the bot's periodic maintenance.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/metrics"
	"github.com/m3rciful/contentbot/core/telegram/state"
)

// Scheduler wraps a cron runner. Schedules use the standard five-field
// syntax or descriptors such as "@every 1h".
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddSessionPurge registers a job that removes expired sessions from p.
func (s *Scheduler) AddSessionPurge(spec string, p state.Purger) error {
	if p == nil {
		return fmt.Errorf("jobs: nil purger")
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = PurgeSessions(ctx, p)
	})
	if err != nil {
		return fmt.Errorf("jobs: session purge schedule %q: %w", spec, err)
	}
	logger.Jobs.Info("job registered",
		slog.String("event", "job.register"),
		slog.String("job", "session_purge"),
		slog.String("schedule", spec),
	)
	return nil
}

// Start runs the registered jobs in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PurgeSessions deletes expired sessions once and records the count.
func PurgeSessions(ctx context.Context, p state.Purger) (int64, error) {
	start := time.Now()
	n, err := p.Purge(ctx)
	if err != nil {
		logger.Jobs.Error("session purge failed",
			slog.String("event", "job.session_purge"),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	metrics.SessionsPurged.Add(float64(n))
	logger.Jobs.Info("sessions purged",
		slog.String("event", "job.session_purge"),
		slog.Int64("rows", n),
		slog.Duration("duration", logger.Took(start)),
	)
	return n, nil
}
