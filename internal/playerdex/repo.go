package playerdex

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"dungeonhub/pkg/models"
)

// Repo stores each player's latest dex snapshot as a JSON blob keyed by
// wallet account. A snapshot is small (a few hundred monsters at most), so
// whole-row replacement is fine.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Save(ctx context.Context, account string, data models.MonsterDexData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal player dex: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO player_dex (account, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, account, string(b), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save player dex: %w", err)
	}
	return nil
}

// Get returns the player's snapshot, or nil when they have never synced.
func (r *Repo) Get(ctx context.Context, account string) (*models.MonsterDexData, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT data FROM player_dex WHERE account = ?
	`, account)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get player dex: %w", err)
	}

	var data models.MonsterDexData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode player dex: %w", err)
	}
	return &data, nil
}
