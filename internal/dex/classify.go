package dex

import (
	"strings"

	"dungeonhub/pkg/models"
)

// Discovery summarizes how much of a monster's drop table the community has
// identified.
type Discovery struct {
	UnidentifiedDropCount int  `json:"unidentifiedDropCount"`
	Encountered           bool `json:"encountered"`
	Discovered            bool `json:"discovered"`
	FullyDiscovered       bool `json:"fullyDiscovered"`
}

// DiscoveryItem is a monster record annotated with its discovery flags, as
// served to the undiscovered-monsters view.
type DiscoveryItem struct {
	models.MonsterRecord
	Discovery
}

// IsDropIdentified reports whether a drop is fully known: revealed, reliable
// name, and a known drop chance. All three independently; an unlocked drop
// with a good name but chance 0 still counts as unidentified.
func IsDropIdentified(d models.ItemDrop) bool {
	return d.Unlocked && !d.ItemNameWarning && d.DropChance > 0
}

// IsDummyDrop reports the placeholder weapon rows the upstream API pads drop
// tables with. TODO drop this once upstream stops sending them.
func IsDummyDrop(d models.ItemDrop) bool {
	return strings.Contains(d.ItemImageURL, "items/Weapon")
}

// Classify derives the discovery flags for one record. Encountered only
// means anything on a personal-view record (community records carry no
// encounter counters).
func Classify(rec models.MonsterRecord) Discovery {
	identified := 0
	total := 0
	for _, d := range rec.Drops {
		if IsDummyDrop(d) {
			continue
		}
		total++
		if IsDropIdentified(d) {
			identified++
		}
	}

	discovered := identified > 0
	return Discovery{
		UnidentifiedDropCount: total - identified,
		Encountered:           rec.TotalEncounters > 0,
		Discovered:            discovered,
		FullyDiscovered:       discovered && identified == total,
	}
}

// BuildDiscoveryList annotates records for presentation, with dummy drops
// filtered out of the returned drop lists.
func BuildDiscoveryList(records []models.MonsterRecord) []DiscoveryItem {
	items := make([]DiscoveryItem, 0, len(records))
	for _, rec := range records {
		drops := make([]models.ItemDrop, 0, len(rec.Drops))
		for _, d := range rec.Drops {
			if !IsDummyDrop(d) {
				drops = append(drops, d)
			}
		}
		rec.Drops = drops
		items = append(items, DiscoveryItem{
			MonsterRecord: rec,
			Discovery:     Classify(rec),
		})
	}
	return items
}
