package syncer

import (
	"context"
	"fmt"
	"log"
	"time"

	"dungeonhub/internal/community"
	"dungeonhub/internal/dex"
	"dungeonhub/internal/upstream"
	"dungeonhub/pkg/models"
)

const DefaultRequestDelay = 1000 * time.Millisecond

// Pipeline runs one end-to-end sync for a player: list the dex, fetch every
// discovered monster's detail sequentially with a pacing delay, then commit
// the batch into the community dataset.
//
// Fetches are sequential with a fixed inter-request delay; the upstream API
// rate-limits aggressively. Per-item failures are counted and the loop moves
// on, so one bad monster never fails a run.
type Pipeline struct {
	Client    upstream.API
	Community community.Committer
	Delay     time.Duration
}

func NewPipeline(client upstream.API, committer community.Committer, delay time.Duration) *Pipeline {
	if delay < 0 {
		delay = DefaultRequestDelay
	}
	return &Pipeline{Client: client, Community: committer, Delay: delay}
}

// Run starts the sync and returns its event stream. The channel carries
// in-order phase events and is closed after exactly one terminal event
// (Done or Error).
func (p *Pipeline) Run(ctx context.Context, token string) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		p.run(ctx, token, ch)
	}()
	return ch
}

func (p *Pipeline) run(ctx context.Context, token string, ch chan<- Event) {
	if token == "" {
		ch <- newError("not authenticated")
		return
	}

	// init: list the dex and work out which monsters to fetch
	dexData, err := p.Client.FetchDex(ctx, token)
	if err != nil {
		ch <- newError(fmt.Sprintf("failed to fetch monster dex: %v", err))
		return
	}

	monsterIDs := dedupeMonsterIDs(dexData.Discoveries)
	totalDiscoveries := len(dexData.Discoveries)
	total := len(monsterIDs)

	ch <- newInit(total)

	// fetching: one detail request per monster, paced after the first
	communityRecords := make([]models.MonsterRecord, 0, total)
	personalRecords := make([]models.MonsterRecord, 0, total)
	failed := 0

	for i, id := range monsterIDs {
		if i > 0 && p.Delay > 0 {
			if err := sleep(ctx, p.Delay); err != nil {
				ch <- newError(fmt.Sprintf("sync aborted: %v", err))
				return
			}
		}

		detail, err := p.Client.FetchMonsterDetail(ctx, token, id)
		if err != nil {
			failed++
			log.Printf("[syncer] monster %d fetch failed: %v", id, err)
		} else {
			communityRecords = append(communityRecords, dex.MapCommunityRecord(detail))
			personalRecords = append(personalRecords, dex.MapPersonalRecord(detail))
		}

		ch <- newProgress(i+1, total, failed)
	}

	// committing: merge into the community dataset. A failed community
	// write does not fail the sync; the personal result is still good.
	ch <- newCommitting()

	communityUpdated := false
	communityErr := ""

	updated, err := p.Community.Commit(ctx, communityRecords, dexData.TotalMonstersInGame, totalDiscoveries)
	if err != nil {
		communityErr = err.Error()
		log.Printf("[syncer] community commit failed: %v", err)
	} else {
		communityUpdated = updated
	}

	ch <- Done{
		Type:             "done",
		Monsters:         personalRecords,
		LastUpdated:      time.Now().UTC().Format(time.RFC3339),
		TotalDiscoveries: totalDiscoveries,
		TotalMonsters:    dexData.TotalMonstersInGame,
		CommunityUpdated: communityUpdated,
		TotalFailed:      failed,
		CommunityError:   communityErr,
	}
}

// dedupeMonsterIDs keeps the first occurrence of each monsterId and drops
// entries without one. Dex listings repeat a monster when it was discovered
// both as a regular spawn and as a boss.
func dedupeMonsterIDs(discoveries []upstream.DexDiscovery) []int {
	seen := make(map[int]struct{}, len(discoveries))
	ids := make([]int, 0, len(discoveries))
	for _, d := range discoveries {
		if d.MonsterID == nil {
			continue
		}
		id := *d.MonsterID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
