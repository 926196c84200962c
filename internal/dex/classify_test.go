package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonhub/pkg/models"
)

func identifiedDrop() models.ItemDrop {
	return models.ItemDrop{ItemID: 1, ItemName: "Verdant Core", DropChance: 10, Unlocked: true}
}

func TestIsDropIdentified(t *testing.T) {
	assert.True(t, IsDropIdentified(identifiedDrop()))

	locked := identifiedDrop()
	locked.Unlocked = false
	assert.False(t, IsDropIdentified(locked))

	warned := identifiedDrop()
	warned.ItemNameWarning = true
	assert.False(t, IsDropIdentified(warned))

	noChance := identifiedDrop()
	noChance.DropChance = 0
	assert.False(t, IsDropIdentified(noChance), "unlocked with a good name but unknown chance is still unidentified")
}

func TestClassifyIgnoresDummyDrops(t *testing.T) {
	dummy := identifiedDrop()
	dummy.ItemImageURL = "https://cdn.example.com/items/Weapon01.png"

	rec := models.MonsterRecord{
		MonsterID: 5,
		Drops:     []models.ItemDrop{identifiedDrop(), dummy},
	}

	d := Classify(rec)
	assert.Zero(t, d.UnidentifiedDropCount)
	assert.True(t, d.FullyDiscovered)
}

func TestClassifyCounts(t *testing.T) {
	unidentified := identifiedDrop()
	unidentified.DropChance = 0

	rec := models.MonsterRecord{
		MonsterID:       5,
		TotalEncounters: 3,
		Drops:           []models.ItemDrop{identifiedDrop(), unidentified},
	}

	d := Classify(rec)
	assert.Equal(t, 1, d.UnidentifiedDropCount)
	assert.True(t, d.Encountered)
	assert.True(t, d.Discovered)
	assert.False(t, d.FullyDiscovered)
}

func TestBuildDiscoveryListFiltersDummies(t *testing.T) {
	dummy := identifiedDrop()
	dummy.ItemImageURL = "items/Weapon02.png"

	items := BuildDiscoveryList([]models.MonsterRecord{
		{MonsterID: 5, Drops: []models.ItemDrop{identifiedDrop(), dummy}},
		{MonsterID: 12},
	})

	require.Len(t, items, 2)
	assert.Len(t, items[0].Drops, 1)
	assert.True(t, items[0].FullyDiscovered)
	assert.False(t, items[1].Discovered)
}
