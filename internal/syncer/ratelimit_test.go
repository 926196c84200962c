package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(interval time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(NewMemoryState(), interval)
	l.Now = func() time.Time { return now }
	return l, &now
}

func TestLimiterAllowsFirstSync(t *testing.T) {
	l, _ := testLimiter(time.Hour)

	ok, err := l.CanSync(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.True(t, ok)

	minutes, err := l.MinutesUntilNext(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Zero(t, minutes)
}

func TestLimiterBlocksWithinInterval(t *testing.T) {
	l, now := testLimiter(time.Hour)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, "0xabc"))

	*now = now.Add(10 * time.Minute)
	ok, err := l.CanSync(ctx, "0xabc")
	require.NoError(t, err)
	assert.False(t, ok)

	minutes, err := l.MinutesUntilNext(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, 50, minutes)
}

func TestLimiterRoundsRemainingUp(t *testing.T) {
	l, now := testLimiter(time.Hour)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, "0xabc"))

	*now = now.Add(59*time.Minute + 10*time.Second)
	minutes, err := l.MinutesUntilNext(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, 1, minutes, "50 seconds left still reads as 1 minute")
}

func TestLimiterAllowsAfterInterval(t *testing.T) {
	l, now := testLimiter(time.Hour)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, "0xabc"))

	*now = now.Add(time.Hour)
	ok, err := l.CanSync(ctx, "0xabc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiterIsPerAccount(t *testing.T) {
	l, _ := testLimiter(time.Hour)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, "0xabc"))

	ok, err := l.CanSync(ctx, "0xdef")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiterDefaultsInterval(t *testing.T) {
	l := NewLimiter(NewMemoryState(), 0)
	assert.Equal(t, DefaultSyncInterval, l.Interval)
}
