package models

// ResourceRow is one flattened drop row for the resource search: which
// monster drops the item, where, and with what odds. Built from the
// community dataset, unlocked drops only.
type ResourceRow struct {
	Key              string  `json:"key"`
	ResourceName     string  `json:"resourceName"`
	OriginalItemName string  `json:"originalItemName"`
	DerivedItemName  string  `json:"derivedItemName,omitempty"`
	NameWarning      bool    `json:"nameWarning"`
	ResourceID       int     `json:"resourceId"`
	ItemImageURL     string  `json:"itemImageUrl,omitempty"`
	DropChance       float64 `json:"dropChance"`
	MinQuantity      float64 `json:"minQuantity"`
	MaxQuantity      float64 `json:"maxQuantity"`
	MonsterName      string  `json:"monsterName"`
	MonsterImageURL  string  `json:"monsterImageUrl,omitempty"`
	Location         string  `json:"location"`
}
