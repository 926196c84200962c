package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonhub/internal/upstream"
	"dungeonhub/pkg/models"
)

func TestDeriveItemNameFromImageURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com/items/ironOreChunk.png", "Iron Ore Chunk"},
		{"https://cdn.example.com/items/verdant-core.webp", "Verdant Core"},
		{"https://cdn.example.com/items/moss_heart.png", "Moss Heart"},
		{"items/regentCrownShard.png", "Regent Crown Shard"},
		{"https://cdn.example.com/items/iron%20ore.png", "Iron Ore"},
		{"https://cdn.example.com/items/ore.png", "Ore"},
		{"", ""},
		{"https://cdn.example.com/items/", ""},
		{"https://cdn.example.com/items/.png", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveItemNameFromImageURL(tc.in), "url %q", tc.in)
	}
}

func TestToNumber(t *testing.T) {
	assert.Equal(t, 15.5, toNumber("15.5"))
	assert.Equal(t, 3.0, toNumber(" 3 "))
	assert.Equal(t, 0.0, toNumber(""))
	assert.Equal(t, 0.0, toNumber("abc"))
	assert.Equal(t, 0.0, toNumber("NaN"))
	assert.Equal(t, 0.0, toNumber("Inf"))
}

func strPtr(s string) *string { return &s }

func sampleDetail() *upstream.MonsterDetail {
	return &upstream.MonsterDetail{
		MonsterID:                 5,
		FirstEncounteredAt:        "2026-03-04T10:22:00Z",
		FirstEncounteredFloor:     2,
		FirstEncounteredDungeonID: 1,
		TotalEncounters:           14,
		TotalKills:                9,
		DungeonInfo:               &upstream.DungeonInfo{DungeonID: 1, Name: "Verdant Hollow"},
		FloorInfo:                 &upstream.FloorInfo{FloorID: 21, Name: "Mossy Caverns", FloorNumber: 2, Class: "nature"},
		Monster: upstream.Monster{
			MonsterID: 5,
			Name:      "Moss Golem",
			Type:      "elemental",
			Class:     "nature",
			ImageURL:  "https://cdn.example.com/monsters/mossGolem.png",
		},
		Drops: []upstream.Drop{
			{
				ItemID:      301,
				DropChance:  "12.5",
				MinQuantity: "1",
				MaxQuantity: "3",
				Unlocked:    true,
				Item: &upstream.DropItem{
					ItemID:   301,
					Name:     strPtr("Verdant Core"),
					Class:    "material",
					ImageURL: "https://cdn.example.com/items/verdantCore.png",
				},
			},
			{
				ItemID:      302,
				DropChance:  "0",
				MinQuantity: "0",
				MaxQuantity: "0",
				Item: &upstream.DropItem{
					ItemID:   302,
					Name:     strPtr("???"),
					ImageURL: "https://cdn.example.com/items/mossHeart.png",
				},
			},
			{ItemID: 303}, // item block missing entirely
		},
	}
}

func TestMapCommunityRecord(t *testing.T) {
	rec := MapCommunityRecord(sampleDetail())

	assert.Equal(t, 5, rec.MonsterID)
	assert.Equal(t, "Moss Golem", rec.MonsterName)
	require.NotNil(t, rec.Floor)
	assert.Equal(t, "Mossy Caverns", rec.Floor.Name)

	// no personal data on the community shape
	assert.Zero(t, rec.TotalEncounters)
	assert.Nil(t, rec.FirstEncounter)

	require.Len(t, rec.Drops, 3)

	known := rec.Drops[0]
	assert.Equal(t, "Verdant Core", known.ItemName)
	assert.False(t, known.ItemNameWarning)
	assert.Equal(t, 12.5, known.DropChance)
	assert.True(t, known.Unlocked)

	placeholder := rec.Drops[1]
	assert.Equal(t, models.PlaceholderItemName, placeholder.ItemName)
	assert.True(t, placeholder.ItemNameWarning)
	assert.Equal(t, "Moss Heart", placeholder.DerivedItemName)

	missing := rec.Drops[2]
	assert.Equal(t, models.PlaceholderItemName, missing.ItemName)
	assert.True(t, missing.ItemNameWarning)
	assert.Equal(t, "Unknown", missing.ItemClass)
	assert.Empty(t, missing.DerivedItemName)
}

func TestMapPersonalRecord(t *testing.T) {
	rec := MapPersonalRecord(sampleDetail())

	assert.Equal(t, 14, rec.TotalEncounters)
	assert.Equal(t, 9, rec.TotalKills)

	require.NotNil(t, rec.FirstEncounter)
	assert.Equal(t, "Verdant Hollow", rec.FirstEncounter.DungeonName)
	assert.Equal(t, "Mossy Caverns", rec.FirstEncounter.FloorName)
	assert.Equal(t, 2, rec.FirstEncounter.FloorNumber)
}

func TestMapPersonalRecordFallsBackToUnknownLocation(t *testing.T) {
	detail := sampleDetail()
	detail.DungeonInfo = nil
	detail.FloorInfo = nil
	detail.FirstEncounteredFloor = 7

	rec := MapPersonalRecord(detail)

	require.NotNil(t, rec.FirstEncounter)
	assert.Equal(t, "Unknown", rec.FirstEncounter.DungeonName)
	assert.Equal(t, "Unknown", rec.FirstEncounter.FloorName)
	assert.Equal(t, 7, rec.FirstEncounter.FloorNumber)
	assert.Nil(t, rec.Floor)
}
