package syncer

import (
	"time"

	"dungeonhub/pkg/models"
)

// Event is one entry in a sync run's progress stream. Exactly one terminal
// event (Done or Error) closes every run. Each concrete event marshals with
// only its own fields, so the NDJSON wire format stays a tagged union.
type Event interface {
	event()
}

type Init struct {
	Type  string `json:"type"`
	Total int    `json:"total"`
}

type Progress struct {
	Type    string `json:"type"`
	Fetched int    `json:"fetched"`
	Total   int    `json:"total"`
	Failed  int    `json:"failed"`
}

type Committing struct {
	Type string `json:"type"`
}

type Done struct {
	Type             string                 `json:"type"`
	Monsters         []models.MonsterRecord `json:"monsters"`
	LastUpdated      string                 `json:"lastUpdated"`
	TotalDiscoveries int                    `json:"totalDiscoveries"`
	TotalMonsters    int                    `json:"totalMonsters"`
	CommunityUpdated bool                   `json:"communityUpdated"`
	TotalFailed      int                    `json:"totalFailed"`
	CommunityError   string                 `json:"communityError,omitempty"`
}

type Error struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (Init) event()       {}
func (Progress) event()   {}
func (Committing) event() {}
func (Done) event()       {}
func (Error) event()      {}

func newInit(total int) Init {
	return Init{Type: "init", Total: total}
}

func newProgress(fetched, total, failed int) Progress {
	return Progress{Type: "progress", Fetched: fetched, Total: total, Failed: failed}
}

func newCommitting() Committing {
	return Committing{Type: "committing"}
}

func newError(msg string) Error {
	return Error{Type: "error", Error: msg}
}

// CommunityUpdate is broadcast to hub observers after a commit that changed
// the shared dataset, so other clients know to refresh.
type CommunityUpdate struct {
	Type          string    `json:"type"` // "community.update"
	Account       string    `json:"account"`
	LastUpdated   string    `json:"lastUpdated"`
	TotalMonsters int       `json:"totalMonsters"`
	At            time.Time `json:"at"`
}
