package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsSleeper(t *testing.T) {
	t.Parallel()

	assert.IsType(t, Noop{}, New(true))
	assert.IsType(t, Real{}, New(false))
}

func TestRealSleepHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Real{}.Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, Real{}.Sleep(context.Background(), time.Millisecond))
	require.NoError(t, Real{}.Sleep(context.Background(), 0))
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	require.NoError(t, r.Sleep(context.Background(), 2*time.Second))
	require.NoError(t, r.Sleep(context.Background(), 4*time.Second))
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, r.Delays)
}
