package models

import (
	"strings"
	"time"
)

// ItemDrop is one (monster, item) drop relationship as stored in the
// community combined JSON. The wire names are camelCase because the blob
// format is shared with data written by earlier versions of the app.
//
// Unknown values keep the upstream sentinels: itemName "???" plus the
// warning flag for an unidentified name, 0 for an unknown dropChance or
// quantity range.
type ItemDrop struct {
	ItemID          int     `json:"itemId"`
	ItemName        string  `json:"itemName"`
	DerivedItemName string  `json:"derivedItemName,omitempty"`
	ItemNameWarning bool    `json:"itemNameWarning"`
	ItemClass       string  `json:"itemClass"`
	ItemImageURL    string  `json:"itemImageUrl"`
	DropChance      float64 `json:"dropChance"`
	MinQuantity     float64 `json:"minQuantity"`
	MaxQuantity     float64 `json:"maxQuantity"`
	BossDrop        bool    `json:"bossDrop"`
	Unlocked        bool    `json:"unlocked"`
}

// PlaceholderItemName is what the upstream API reports for an item whose
// name has not been revealed to the syncing player.
const PlaceholderItemName = "???"

// HasReliableName reports whether the drop's upstream name can be trusted.
func (d ItemDrop) HasReliableName() bool {
	return !d.ItemNameWarning && strings.TrimSpace(d.ItemName) != PlaceholderItemName
}

// FloorInfo locates a monster in the community view.
type FloorInfo struct {
	FloorID     int    `json:"floorId"`
	Name        string `json:"name"`
	FloorNumber int    `json:"floorNumber,omitempty"`
	Class       string `json:"class,omitempty"`
}

// FirstEncounter locates a monster in a player's personal view.
type FirstEncounter struct {
	EncounteredAt string `json:"encounteredAt"`
	DungeonID     int    `json:"dungeonId"`
	DungeonName   string `json:"dungeonName"`
	FloorName     string `json:"floorName"`
	FloorNumber   int    `json:"floorNumber"`
}

// MonsterRecord is one monster known to the game. The same shape serves the
// community (combined) view and the personal view; the personal counters and
// FirstEncounter are only set on player-synced records.
type MonsterRecord struct {
	MonsterID       int        `json:"monsterId"`
	MonsterName     string     `json:"monsterName"`
	MonsterType     string     `json:"monsterType"`
	MonsterClass    string     `json:"monsterClass"`
	MonsterImageURL string     `json:"monsterImageUrl"`
	Floor           *FloorInfo `json:"floor,omitempty"`
	Drops           []ItemDrop `json:"drops"`

	TotalEncounters     int             `json:"totalEncounters,omitempty"`
	TotalKills          int             `json:"totalKills,omitempty"`
	TotalDefeats        int             `json:"totalDefeats,omitempty"`
	TotalBossEncounters int             `json:"totalBossEncounters,omitempty"`
	TotalBossKills      int             `json:"totalBossKills,omitempty"`
	TotalBossDefeats    int             `json:"totalBossDefeats,omitempty"`
	FirstEncounter      *FirstEncounter `json:"firstEncounter,omitempty"`
}

// MonsterDexData is the persisted aggregate: the community combined JSON in
// the blob store, and the per-player personal copy in sqlite.
type MonsterDexData struct {
	LastUpdated      string          `json:"lastUpdated"`
	TotalDiscoveries int             `json:"totalDiscoveries"`
	TotalMonsters    int             `json:"totalMonsters"`
	Monsters         []MonsterRecord `json:"monsters"`
}

// NewEmptyDexData returns the dataset written on first access when no
// community blob exists yet.
func NewEmptyDexData(now time.Time) MonsterDexData {
	return MonsterDexData{
		LastUpdated:      now.UTC().Format(time.RFC3339),
		TotalDiscoveries: 0,
		TotalMonsters:    0,
		Monsters:         []MonsterRecord{},
	}
}
