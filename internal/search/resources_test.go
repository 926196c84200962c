package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonhub/pkg/models"
)

func testData() *models.MonsterDexData {
	return &models.MonsterDexData{
		LastUpdated: "2026-05-01T12:00:00Z",
		Monsters: []models.MonsterRecord{
			{
				MonsterID:   5,
				MonsterName: "Moss Golem",
				Floor:       &models.FloorInfo{FloorID: 21, Name: "Mossy Caverns", FloorNumber: 2},
				Drops: []models.ItemDrop{
					{ItemID: 301, ItemName: "Verdant Core", DropChance: 12.5, Unlocked: true},
					{ItemID: 302, ItemName: "???", ItemNameWarning: true, DerivedItemName: "Moss Heart", Unlocked: true},
					{ItemID: 303, ItemName: "Hidden Thing", Unlocked: false},
					{ItemID: 900, ItemName: "Padding", ItemImageURL: "items/Weapon01.png", Unlocked: true},
				},
			},
			{
				MonsterID:   12,
				MonsterName: "Thorn Regent",
				Drops: []models.ItemDrop{
					{ItemID: 310, ItemName: "Regent Crown Shard", DropChance: 45, Unlocked: true},
				},
			},
		},
	}
}

func TestBuildResourceRows(t *testing.T) {
	rows := BuildResourceRows(testData())

	// locked and dummy drops excluded
	require.Len(t, rows, 3)

	assert.Equal(t, "Verdant Core", rows[0].ResourceName)
	assert.Equal(t, "Mossy Caverns / Floor 2", rows[0].Location)
	assert.Equal(t, "Moss Golem", rows[0].MonsterName)

	// unreliable name falls back to the derived one
	assert.Equal(t, "Moss Heart", rows[1].ResourceName)
	assert.Equal(t, "???", rows[1].OriginalItemName)
	assert.True(t, rows[1].NameWarning)

	// monster without a floor
	assert.Equal(t, "Unknown", rows[2].Location)
}

func TestFilterRowsByName(t *testing.T) {
	rows := BuildResourceRows(testData())

	got := FilterRows(rows, "verdant")
	require.Len(t, got, 1)
	assert.Equal(t, 301, got[0].ResourceID)

	got = FilterRows(rows, "crwn shard") // fuzzy tolerates a typo
	require.Len(t, got, 1)
	assert.Equal(t, 310, got[0].ResourceID)
}

func TestFilterRowsByItemID(t *testing.T) {
	rows := BuildResourceRows(testData())

	got := FilterRows(rows, "302")
	require.Len(t, got, 1)
	assert.Equal(t, "Moss Heart", got[0].ResourceName)

	assert.Empty(t, FilterRows(rows, "9999"))
}

func TestFilterRowsEmptyQuery(t *testing.T) {
	rows := BuildResourceRows(testData())
	assert.Equal(t, rows, FilterRows(rows, "  "))
}

func TestPaginate(t *testing.T) {
	rows := BuildResourceRows(testData())

	page1 := Paginate(rows, 1, 2)
	require.Len(t, page1, 2)

	page2 := Paginate(rows, 2, 2)
	require.Len(t, page2, 1)

	assert.Empty(t, Paginate(rows, 3, 2))
	assert.Len(t, Paginate(rows, 0, 0), 3, "bad paging values fall back to defaults")
}
