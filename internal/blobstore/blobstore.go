// Package blobstore persists the community combined JSON as a single named
// blob. The reconciliation layer only ever reads the whole document, merges
// in memory, and writes the whole document back.
package blobstore

import (
	"context"
	"errors"

	"dungeonhub/pkg/models"
)

// ErrNotFound is returned by Read when no community blob has been written
// yet. Callers synthesize an empty dataset in that case.
var ErrNotFound = errors.New("blobstore: combined data not found")

type Store interface {
	Read(ctx context.Context) (*models.MonsterDexData, error)
	Write(ctx context.Context, data *models.MonsterDexData) error
}
