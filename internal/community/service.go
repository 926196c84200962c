package community

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dungeonhub/internal/blobstore"
	"dungeonhub/internal/dex"
	"dungeonhub/pkg/models"
)

// Committer is what the sync pipeline needs from this package.
type Committer interface {
	Commit(ctx context.Context, records []models.MonsterRecord, totalMonstersInGame, totalDiscoveries int) (bool, error)
}

// Service owns the community dataset: read-or-create on access, and the
// read-merge-write commit at the end of a sync run. Commits assume a single
// writer at a time; the hourly per-client rate limit keeps overlapping
// commits rare rather than impossible.
type Service struct {
	Store blobstore.Store
	Now   func() time.Time
}

func NewService(store blobstore.Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Current returns the community dataset, creating and persisting an empty
// one on first access.
func (s *Service) Current(ctx context.Context) (*models.MonsterDexData, error) {
	data, err := s.Store.Read(ctx)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, blobstore.ErrNotFound) {
		return nil, fmt.Errorf("read community data: %w", err)
	}

	empty := models.NewEmptyDexData(s.Now())
	if err := s.Store.Write(ctx, &empty); err != nil {
		return nil, fmt.Errorf("seed community data: %w", err)
	}
	return &empty, nil
}

// Commit merges the batch into the persisted dataset and writes the result
// back only when the merge actually changed something. Returns whether the
// community dataset was updated.
func (s *Service) Commit(ctx context.Context, records []models.MonsterRecord, totalMonstersInGame, totalDiscoveries int) (bool, error) {
	existing, err := s.Store.Read(ctx)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			return false, fmt.Errorf("read community data: %w", err)
		}
		empty := models.NewEmptyDexData(s.Now())
		existing = &empty
	}

	merged, changed := dex.Merge(*existing, records, totalMonstersInGame, totalDiscoveries, s.Now())
	if !changed {
		log.Printf("[community] merge of %d records changed nothing, skipping write", len(records))
		return false, nil
	}

	if err := s.Store.Write(ctx, &merged); err != nil {
		return false, fmt.Errorf("write community data: %w", err)
	}
	log.Printf("[community] merged %d records, dataset now has %d monsters", len(records), len(merged.Monsters))
	return true, nil
}
