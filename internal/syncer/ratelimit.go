package syncer

import (
	"context"
	"math"
	"time"
)

const DefaultSyncInterval = time.Hour

// Limiter enforces a minimum wall-clock interval between sync initiations
// per account. Advisory only: it is not server-wide mutual exclusion, it
// just keeps one well-behaved client from hammering the upstream API.
type Limiter struct {
	State    ClientState
	Interval time.Duration
	Now      func() time.Time
}

func NewLimiter(state ClientState, interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Limiter{State: state, Interval: interval, Now: time.Now}
}

func (l *Limiter) CanSync(ctx context.Context, account string) (bool, error) {
	last, ok, err := l.State.LastSync(ctx, account)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return l.Now().Sub(last) >= l.Interval, nil
}

// MinutesUntilNext reports how long until the account may sync again,
// rounded up; 0 when a sync is allowed now.
func (l *Limiter) MinutesUntilNext(ctx context.Context, account string) (int, error) {
	last, ok, err := l.State.LastSync(ctx, account)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	remaining := last.Add(l.Interval).Sub(l.Now())
	if remaining <= 0 {
		return 0, nil
	}
	return int(math.Ceil(remaining.Minutes())), nil
}

// Record marks a sync as initiated now.
func (l *Limiter) Record(ctx context.Context, account string) error {
	return l.State.SetLastSync(ctx, account, l.Now())
}

// LastSyncAt returns the recorded last sync time, zero when none.
func (l *Limiter) LastSyncAt(ctx context.Context, account string) (time.Time, bool, error) {
	return l.State.LastSync(ctx, account)
}
