package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/offer-tracker/internal/metrics"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 15 * time.Minute

// Ticker runs one poll. Engine implements it.
type Ticker interface {
	RunTick(ctx context.Context) (*TickResult, error)
}

// Scheduler drives ticks at a fixed interval. A tick that is still running
// when the next one is due causes that one to be skipped.
type Scheduler struct {
	cron       *cron.Cron
	ticker     Ticker
	log        *slog.Logger
	entryID    cron.EntryID
	runOnStart bool

	// startup tracks the run-on-start tick, which cron does not know about.
	startup sync.WaitGroup
}

// SchedulerOption configures the Scheduler.
type SchedulerOption func(*Scheduler)

// WithRunOnStart fires one tick as soon as the scheduler starts.
func WithRunOnStart(enabled bool) SchedulerOption {
	return func(s *Scheduler) {
		s.runOnStart = enabled
	}
}

// NewScheduler creates a Scheduler that calls t every interval.
func NewScheduler(
	t Ticker,
	interval time.Duration,
	log *slog.Logger,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("schedule interval must be positive")
	}

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{
		cron:   c,
		ticker: t,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runTick)
	if err != nil {
		return nil, err
	}
	s.entryID = id

	return s, nil
}

// Start begins running scheduled ticks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "run_on_start", s.runOnStart)
	s.cron.Start()
	s.SyncNextRunTimestamp()
	if s.runOnStart {
		s.startup.Go(s.runTick)
	}
}

// Stop halts scheduling. The returned context is done once every running
// tick, including the run-on-start one, has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	cronDone := s.cron.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		<-cronDone.Done()
		s.startup.Wait()
	}()
	return ctx
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns when the next scheduled tick is due. It is zero before Start.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// SyncNextRunTimestamp publishes the next tick time as a gauge.
func (s *Scheduler) SyncNextRunTimestamp() {
	if next := s.NextRun(); !next.IsZero() {
		metrics.SchedulerNextTickTimestamp.Set(float64(next.Unix()))
	}
}

func (s *Scheduler) runTick() {
	defer s.SyncNextRunTimestamp()

	res, err := s.ticker.RunTick(context.Background())
	if err != nil {
		s.log.Error("scheduled tick failed", "error", err)
		return
	}
	s.log.Info("scheduled tick finished",
		"outcome", string(res.Outcome),
		"pages", res.PagesFetched,
		"duration", res.Duration,
	)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
