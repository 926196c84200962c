package dex

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"dungeonhub/internal/upstream"
	"dungeonhub/pkg/models"
)

var (
	extensionRe = regexp.MustCompile(`\.[^/.]+$`)
	camelRe     = regexp.MustCompile(`([a-z])([A-Z])`)
	separatorRe = regexp.MustCompile(`[-_]+`)
)

// DeriveItemNameFromImageURL guesses a display name from an item image URL:
// "https://cdn/items/ironOreChunk.png" -> "Iron Ore Chunk". Returns "" when
// no usable file name segment exists. The derived name only ever serves as a
// fallback for placeholder names; it never replaces a known good one.
func DeriveItemNameFromImageURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}

	fileName := ""
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		parts := strings.Split(u.Path, "/")
		fileName = parts[len(parts)-1]
	} else {
		parts := strings.Split(imageURL, "/")
		fileName = parts[len(parts)-1]
	}

	if decoded, err := url.PathUnescape(fileName); err == nil {
		fileName = decoded
	}

	name := extensionRe.ReplaceAllString(fileName, "")
	name = camelRe.ReplaceAllString(name, "$1 $2")
	name = separatorRe.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

func titleCase(w string) string {
	r := []rune(w)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

// toNumber coerces an upstream numeric string ("15.5") to a float. Missing,
// malformed, or non-finite values become 0, the same sentinel the rest of
// the dataset uses for "unknown".
func toNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func mapDrops(detail *upstream.MonsterDetail) []models.ItemDrop {
	drops := make([]models.ItemDrop, 0, len(detail.Drops))
	for _, d := range detail.Drops {
		itemName := models.PlaceholderItemName
		itemClass := "Unknown"
		itemImageURL := ""
		if d.Item != nil {
			if d.Item.Name != nil && *d.Item.Name != "" {
				itemName = *d.Item.Name
			}
			if d.Item.Class != "" {
				itemClass = d.Item.Class
			}
			itemImageURL = d.Item.ImageURL
		}

		drops = append(drops, models.ItemDrop{
			ItemID:          d.ItemID,
			ItemName:        itemName,
			DerivedItemName: DeriveItemNameFromImageURL(itemImageURL),
			ItemNameWarning: strings.TrimSpace(itemName) == models.PlaceholderItemName,
			ItemClass:       itemClass,
			ItemImageURL:    itemImageURL,
			DropChance:      toNumber(d.DropChance),
			MinQuantity:     toNumber(d.MinQuantity),
			MaxQuantity:     toNumber(d.MaxQuantity),
			BossDrop:        d.BossDrop,
			Unlocked:        d.Unlocked,
		})
	}
	return drops
}

// MapCommunityRecord converts one raw monster detail into the shape stored
// in the community combined JSON: descriptive fields, floor info, and drops,
// without personal counters.
func MapCommunityRecord(detail *upstream.MonsterDetail) models.MonsterRecord {
	rec := models.MonsterRecord{
		MonsterID:       detail.Monster.MonsterID,
		MonsterName:     detail.Monster.Name,
		MonsterType:     detail.Monster.Type,
		MonsterClass:    detail.Monster.Class,
		MonsterImageURL: detail.Monster.ImageURL,
		Drops:           mapDrops(detail),
	}
	if detail.FloorInfo != nil {
		rec.Floor = &models.FloorInfo{
			FloorID:     detail.FloorInfo.FloorID,
			Name:        detail.FloorInfo.Name,
			FloorNumber: detail.FloorInfo.FloorNumber,
			Class:       detail.FloorInfo.Class,
		}
	}
	return rec
}

// MapPersonalRecord is MapCommunityRecord plus the player's own counters and
// first-encounter location.
func MapPersonalRecord(detail *upstream.MonsterDetail) models.MonsterRecord {
	rec := MapCommunityRecord(detail)

	rec.TotalEncounters = detail.TotalEncounters
	rec.TotalKills = detail.TotalKills
	rec.TotalDefeats = detail.TotalDefeats
	rec.TotalBossEncounters = detail.TotalBossEncounters
	rec.TotalBossKills = detail.TotalBossKills
	rec.TotalBossDefeats = detail.TotalBossDefeats

	fe := &models.FirstEncounter{
		EncounteredAt: detail.FirstEncounteredAt,
		DungeonID:     detail.FirstEncounteredDungeonID,
		DungeonName:   "Unknown",
		FloorName:     "Unknown",
		FloorNumber:   detail.FirstEncounteredFloor,
	}
	if detail.DungeonInfo != nil && detail.DungeonInfo.Name != "" {
		fe.DungeonName = detail.DungeonInfo.Name
	}
	if detail.FloorInfo != nil {
		if detail.FloorInfo.Name != "" {
			fe.FloorName = detail.FloorInfo.Name
		}
		if detail.FloorInfo.FloorNumber != 0 {
			fe.FloorNumber = detail.FloorInfo.FloorNumber
		}
	}
	rec.FirstEncounter = fe
	return rec
}
