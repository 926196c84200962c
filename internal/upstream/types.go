package upstream

// Payload is the request body for the single game action endpoint. The API
// multiplexes everything through one POST with an action discriminator.
type Payload struct {
	Action string `json:"action"`
	Params Params `json:"params"`
}

type Params struct {
	DataType  string `json:"dataType"`
	SubAction string `json:"subAction"`
	MonsterID int    `json:"monsterId,omitempty"`
}

func dexDataPayload() Payload {
	return Payload{
		Action: "GET_GAME_DATA",
		Params: Params{
			DataType:  "monsterDex",
			SubAction: "GET_DEX_DATA",
		},
	}
}

func monsterDetailsPayload(monsterID int) Payload {
	return Payload{
		Action: "GET_GAME_DATA",
		Params: Params{
			DataType:  "monsterDex",
			SubAction: "GET_MONSTER_DETAILS",
			MonsterID: monsterID,
		},
	}
}

// envelope is the common response wrapper; every call reports success in the
// body regardless of HTTP status.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// DexDiscovery references one discovered monster in the dex listing. The
// same monster can appear more than once (regular and boss discoveries).
type DexDiscovery struct {
	MonsterID *int `json:"monsterId"`
}

type DexData struct {
	Discoveries         []DexDiscovery `json:"discoveries"`
	TotalMonstersInGame int            `json:"totalMonstersInGame"`
}

type dexResponse struct {
	envelope
	Data *DexData `json:"data"`
}

// Monster is the upstream descriptive block of a monster detail.
type Monster struct {
	MonsterID int    `json:"monsterId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Class     string `json:"class"`
	ImageURL  string `json:"imageUrl"`
}

type DungeonInfo struct {
	DungeonID int    `json:"dungeonId"`
	Name      string `json:"name"`
}

type FloorInfo struct {
	FloorID     int    `json:"floorId"`
	Name        string `json:"name"`
	FloorNumber int    `json:"floorNumber"`
	Class       string `json:"class"`
}

type DropItem struct {
	ItemID   int     `json:"itemId"`
	Name     *string `json:"name"`
	Class    string  `json:"class"`
	ImageURL string  `json:"imageUrl"`
}

// Drop is one raw drop row. Chance and quantities come over the wire as
// strings ("15.5"); the mapper coerces them.
type Drop struct {
	ItemID      int       `json:"itemId"`
	DropChance  string    `json:"dropChance"`
	MinQuantity string    `json:"minQuantity"`
	MaxQuantity string    `json:"maxQuantity"`
	BossDrop    bool      `json:"bossDrop"`
	Unlocked    bool      `json:"unlocked"`
	Item        *DropItem `json:"item"`
}

// MonsterDetail is the full per-monster payload for the syncing player.
type MonsterDetail struct {
	MonsterID                 int          `json:"monsterId"`
	FirstEncounteredAt        string       `json:"firstEncounteredAt"`
	FirstEncounteredFloor     int          `json:"firstEncounteredFloor"`
	FirstEncounteredDungeonID int          `json:"firstEncounteredDungeonId"`
	TotalEncounters           int          `json:"totalEncounters"`
	TotalKills                int          `json:"totalKills"`
	TotalDefeats              int          `json:"totalDefeats"`
	TotalBossEncounters       int          `json:"totalBossEncounters"`
	TotalBossKills            int          `json:"totalBossKills"`
	TotalBossDefeats          int          `json:"totalBossDefeats"`
	DungeonInfo               *DungeonInfo `json:"dungeonInfo"`
	FloorInfo                 *FloorInfo   `json:"floorInfo"`
	Monster                   Monster      `json:"monster"`
	Drops                     []Drop       `json:"drops"`
}

type detailResponse struct {
	envelope
	Data *MonsterDetail `json:"data"`
}

type challengeResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
