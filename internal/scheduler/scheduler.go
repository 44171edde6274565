package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single run.
const jobTimeout = 2 * time.Minute

type BookingSweeper interface {
	CompleteElapsed(ctx context.Context) (int, error)
}

type SessionCleaner interface {
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type Config struct {
	SweepSpec          string
	SessionCleanupSpec string
	Location           *time.Location
}

type Scheduler struct {
	cron     *cron.Cron
	bookings BookingSweeper
	sessions SessionCleaner
	log      *zap.Logger
}

// New registers the booking completion sweep and, when a cleanup schedule is set, the
// expired session cleanup. Nothing runs until Start.
func New(cfg Config, bookings BookingSweeper, sessions SessionCleaner, log *zap.Logger) (*Scheduler, error) {
	log = log.With(zap.String("component", "scheduler"))

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	cronLog := cronLogger{log: log.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		bookings: bookings,
		sessions: sessions,
		log:      log,
	}

	if _, err := s.cron.AddFunc(cfg.SweepSpec, s.SweepBookings); err != nil {
		return nil, fmt.Errorf("schedule booking sweep %q: %w", cfg.SweepSpec, err)
	}

	if cfg.SessionCleanupSpec != "" && sessions != nil {
		if _, err := s.cron.AddFunc(cfg.SessionCleanupSpec, s.CleanSessions); err != nil {
			return nil, fmt.Errorf("schedule session cleanup %q: %w", cfg.SessionCleanupSpec, err)
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.log.Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// SweepBookings moves every booking whose last slot has ended to complete.
func (s *Scheduler) SweepBookings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	completed, err := s.bookings.CompleteElapsed(ctx)
	if err != nil {
		s.log.Error("Booking sweep failed", zap.Error(err))
		return
	}

	if completed > 0 {
		s.log.Info("Booking sweep finished",
			zap.Int("completed", completed),
			zap.Duration("took", time.Since(start)),
		)
		return
	}
	s.log.Debug("Booking sweep finished, nothing to complete")
}

func (s *Scheduler) CleanSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.sessions.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Session cleanup failed", zap.Error(err))
		return
	}
	s.log.Debug("Expired sessions removed", zap.Int64("count", removed))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
