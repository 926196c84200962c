package dex

import (
	"time"

	"dungeonhub/pkg/models"
)

// Merge reconciles a batch of freshly synced records into the community
// dataset. Pure: inputs are never mutated. Every rule only moves a field
// from "unknown" to "known"; a value the community has already learned is
// never regressed by a record that still lacks it.
//
// The returned bool reports whether anything actually changed; LastUpdated
// advances only in that case, so re-merging the same batch is idempotent.
func Merge(existing models.MonsterDexData, records []models.MonsterRecord, totalMonstersInGame, totalDiscoveries int, now time.Time) (models.MonsterDexData, bool) {
	monsters := make([]models.MonsterRecord, len(existing.Monsters))
	copy(monsters, existing.Monsters)

	index := make(map[int]int, len(monsters))
	for i, m := range monsters {
		index[m.MonsterID] = i
	}

	changed := false

	for _, rec := range records {
		i, ok := index[rec.MonsterID]
		if !ok {
			index[rec.MonsterID] = len(monsters)
			monsters = append(monsters, rec)
			changed = true
			continue
		}

		current := monsters[i]

		merged, dropsChanged := MergeDrops(current.Drops, rec.Drops)
		if dropsChanged {
			current.Drops = merged
			changed = true
		}

		if current.Floor == nil && rec.Floor != nil {
			floor := *rec.Floor
			current.Floor = &floor
			changed = true
		}

		monsters[i] = current
	}

	out := models.MonsterDexData{
		LastUpdated:      existing.LastUpdated,
		TotalDiscoveries: maxInt(totalDiscoveries, existing.TotalDiscoveries),
		TotalMonsters:    maxInt(totalMonstersInGame, existing.TotalMonsters),
		Monsters:         monsters,
	}
	if changed {
		out.LastUpdated = now.UTC().Format(time.RFC3339)
	}
	return out, changed
}

// MergeDrops reconciles one monster's drop list, keyed by itemId. Existing
// drops keep their position; new itemIds append in incoming order.
func MergeDrops(existing, incoming []models.ItemDrop) ([]models.ItemDrop, bool) {
	merged := make([]models.ItemDrop, len(existing))
	copy(merged, existing)

	index := make(map[int]int, len(merged))
	for i, d := range merged {
		index[d.ItemID] = i
	}

	changed := false

	for _, in := range incoming {
		i, ok := index[in.ItemID]
		if !ok {
			index[in.ItemID] = len(merged)
			merged = append(merged, in)
			changed = true
			continue
		}

		cur := merged[i]
		dropChanged := false

		if !cur.Unlocked && in.Unlocked {
			cur.Unlocked = true
			dropChanged = true
		}

		// Adopt the incoming name only when ours is unreliable and theirs
		// is not. The derived name travels with it, and the warning clears.
		if !cur.HasReliableName() && in.HasReliableName() {
			cur.ItemName = in.ItemName
			cur.DerivedItemName = in.DerivedItemName
			cur.ItemNameWarning = false
			dropChanged = true
		}

		if cur.DropChance == 0 && in.DropChance > 0 {
			cur.DropChance = in.DropChance
			dropChanged = true
		}

		// min and max are only meaningful as a pair, so they move together.
		if cur.MinQuantity == 0 && in.MinQuantity > 0 {
			cur.MinQuantity = in.MinQuantity
			cur.MaxQuantity = in.MaxQuantity
			dropChanged = true
		}

		if dropChanged {
			merged[i] = cur
			changed = true
		}
	}

	return merged, changed
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
