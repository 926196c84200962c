package syncer

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// ClientState is the durable last-sync bookkeeping behind the rate limiter.
// Injected so tests (and the CLI) can run against an in-memory copy.
type ClientState interface {
	LastSync(ctx context.Context, account string) (time.Time, bool, error)
	SetLastSync(ctx context.Context, account string, t time.Time) error
}

// StateRepo stores last-sync timestamps in the sync_state sqlite table.
type StateRepo struct {
	DB *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{DB: db}
}

func (r *StateRepo) LastSync(ctx context.Context, account string) (time.Time, bool, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT last_sync_at
		FROM sync_state
		WHERE account = ?
	`, account)

	var t time.Time
	if err := row.Scan(&t); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("get last sync: %w", err)
	}
	return t, true, nil
}

func (r *StateRepo) SetLastSync(ctx context.Context, account string, t time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sync_state (account, last_sync_at)
		VALUES (?, ?)
		ON CONFLICT(account) DO UPDATE SET
			last_sync_at = excluded.last_sync_at
	`, account, t.UTC())
	if err != nil {
		return fmt.Errorf("set last sync: %w", err)
	}
	return nil
}

// MemoryState is the in-memory ClientState used by tests and one-shot CLI
// runs that have no database.
type MemoryState struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryState() *MemoryState {
	return &MemoryState{last: make(map[string]time.Time)}
}

func (m *MemoryState) LastSync(ctx context.Context, account string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.last[account]
	return t, ok, nil
}

func (m *MemoryState) SetLastSync(ctx context.Context, account string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[account] = t
	return nil
}
