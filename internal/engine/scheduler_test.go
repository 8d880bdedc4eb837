package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/offer-tracker/internal/metrics"
)

type countingTicker struct {
	calls   atomic.Int32
	running atomic.Int32
	overlap atomic.Bool
	delay   time.Duration
	once    sync.Once
	first   chan struct{}
}

func newCountingTicker(delay time.Duration) *countingTicker {
	return &countingTicker{delay: delay, first: make(chan struct{})}
}

func (c *countingTicker) RunTick(context.Context) (*TickResult, error) {
	if c.running.Add(1) > 1 {
		c.overlap.Store(true)
	}
	defer c.running.Add(-1)

	c.calls.Add(1)
	c.once.Do(func() { close(c.first) })
	time.Sleep(c.delay)
	return &TickResult{Outcome: OutcomeIdle}, nil
}

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newCountingTicker(0), 15*time.Minute, quietLogger())
	require.NoError(t, err)

	entries := sched.Entries()
	assert.Len(t, entries, 1)
	assert.NotZero(t, sched.entryID)
	assert.True(t, sched.NextRun().IsZero(), "next run is unknown before Start")
}

func TestNewScheduler_InvalidInterval(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		_, err := NewScheduler(newCountingTicker(0), d, quietLogger())
		require.Error(t, err)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newCountingTicker(0), time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	assert.False(t, sched.NextRun().IsZero())
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_RunOnStart(t *testing.T) {
	t.Parallel()

	ticker := newCountingTicker(0)
	sched, err := NewScheduler(ticker, time.Hour, quietLogger(), WithRunOnStart(true))
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	select {
	case <-ticker.first:
	case <-time.After(5 * time.Second):
		t.Fatal("tick did not run on start")
	}
	assert.Equal(t, int32(1), ticker.calls.Load())
}

func TestScheduler_SkipsOverlappingTicks(t *testing.T) {
	t.Parallel()

	ticker := newCountingTicker(2500 * time.Millisecond)
	sched, err := NewScheduler(ticker, time.Second, quietLogger())
	require.NoError(t, err)

	sched.Start()

	select {
	case <-ticker.first:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled tick did not run")
	}

	// Two more schedule points pass while the first tick is still running.
	time.Sleep(2 * time.Second)
	<-sched.Stop().Done()

	assert.False(t, ticker.overlap.Load(), "ticks must not overlap")
	assert.Equal(t, int32(1), ticker.calls.Load())
}

// Not parallel: reads a global gauge.
func TestScheduler_SyncNextRunTimestamp(t *testing.T) {
	sched, err := NewScheduler(newCountingTicker(0), 15*time.Minute, quietLogger())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	sched.SyncNextRunTimestamp()

	next := ptestutil.ToFloat64(metrics.SchedulerNextTickTimestamp)
	assert.InDelta(t, float64(sched.NextRun().Unix()), next, 0)
	assert.Greater(t, next, float64(time.Now().Unix()))
}

func TestScheduler_StopWaitsForStartupTick(t *testing.T) {
	t.Parallel()

	ticker := newCountingTicker(300 * time.Millisecond)
	sched, err := NewScheduler(ticker, time.Hour, quietLogger(), WithRunOnStart(true))
	require.NoError(t, err)

	sched.Start()

	select {
	case <-ticker.first:
	case <-time.After(5 * time.Second):
		t.Fatal("tick did not run on start")
	}

	ctx := sched.Stop()
	select {
	case <-ctx.Done():
		assert.Zero(t, ticker.running.Load(), "stop finished while the startup tick was running")
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not finish")
	}
}
