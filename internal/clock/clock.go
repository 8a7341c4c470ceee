// Package clock provides the sleepers injected into the orchestrator.
package clock

import (
	"context"
	"time"

	"github.com/dave/jobwiz-sub002/internal/ports"
)

// Real waits for the full duration or until ctx is done.
type Real struct{}

var _ ports.Sleeper = Real{}

// Sleep blocks for d.
func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Noop returns immediately. Fast mode and tests use it.
type Noop struct{}

var _ ports.Sleeper = Noop{}

// Sleep does nothing.
func (Noop) Sleep(context.Context, time.Duration) error { return nil }

// Recorder is a Noop that remembers every requested delay.
type Recorder struct {
	Delays []time.Duration
}

var _ ports.Sleeper = (*Recorder)(nil)

// Sleep records d.
func (r *Recorder) Sleep(_ context.Context, d time.Duration) error {
	r.Delays = append(r.Delays, d)
	return nil
}

// New picks Noop in fast mode and Real otherwise.
func New(fast bool) ports.Sleeper {
	if fast {
		return Noop{}
	}
	return Real{}
}
