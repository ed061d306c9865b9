package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRefreshWorkerRunsImmediatelyAndOnTick(t *testing.T) {
	var calls atomic.Int64
	logger := zerolog.Nop()

	w := NewRefreshWorker([]Target{
		{Name: "users", Fetch: func(context.Context) error {
			calls.Add(1)
			return nil
		}},
	}, 10*time.Millisecond, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	// One immediate refresh plus at least one tick.
	assert.GreaterOrEqual(t, calls.Load(), int64(2))
}

func TestRefreshWorkerContinuesPastFailures(t *testing.T) {
	var failing, healthy atomic.Int64
	logger := zerolog.Nop()

	w := NewRefreshWorker([]Target{
		{Name: "broken", Fetch: func(context.Context) error {
			failing.Add(1)
			return errors.New("boom")
		}},
		{Name: "fine", Fetch: func(context.Context) error {
			healthy.Add(1)
			return nil
		}},
	}, 10*time.Millisecond, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	// The failing target never blocks the one after it.
	assert.GreaterOrEqual(t, failing.Load(), int64(1))
	assert.GreaterOrEqual(t, healthy.Load(), int64(1))
}

func TestRefreshWorkerDefaultInterval(t *testing.T) {
	logger := zerolog.Nop()
	w := NewRefreshWorker(nil, 0, &logger)
	assert.Equal(t, 5*time.Minute, w.interval)
}
