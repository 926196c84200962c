package syncer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dungeonhub/internal/auth"
	"dungeonhub/pkg/models"
)

// PersonalSaver persists a player's own dex snapshot after a successful run.
type PersonalSaver interface {
	Save(ctx context.Context, account string, data models.MonsterDexData) error
}

type Handler struct {
	Pipeline *Pipeline
	Limiter  *Limiter
	Hub      *Hub
	Personal PersonalSaver
}

func NewHandler(pipeline *Pipeline, limiter *Limiter, hub *Hub, personal PersonalSaver) *Handler {
	return &Handler{Pipeline: pipeline, Limiter: limiter, Hub: hub, Personal: personal}
}

// Run streams a full sync as newline-delimited JSON. The response is chunked;
// each phase event is one line. Once a run is admitted it goes to completion
// even if the caller disconnects, so the community commit is never left half
// done.
func (h *Handler) Run(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ctx := c.Request.Context()
	ok, err := h.Limiter.CanSync(ctx, claims.Account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check sync state"})
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	if !ok {
		minutes, _ := h.Limiter.MinutesUntilNext(ctx, claims.Account)
		writeEventLine(c, gin.H{"type": "rate_limited", "minutesUntilNextSync": minutes})
		return
	}

	// The attempt counts against the limit even if the run later fails.
	if err := h.Limiter.Record(ctx, claims.Account); err != nil {
		log.Printf("[syncer] failed to record sync for %s: %v", claims.Account, err)
	}

	// Detach from the request context: a closed connection must not abort
	// the run mid-commit.
	runCtx := context.WithoutCancel(ctx)

	for ev := range h.Pipeline.Run(runCtx, claims.GameToken) {
		writeEventLine(c, ev)

		done, isDone := ev.(Done)
		if !isDone {
			continue
		}
		h.finishRun(runCtx, claims.Account, done)
	}
}

func (h *Handler) finishRun(ctx context.Context, account string, done Done) {
	if h.Personal != nil && len(done.Monsters) > 0 {
		snapshot := models.MonsterDexData{
			Monsters:         done.Monsters,
			LastUpdated:      done.LastUpdated,
			TotalDiscoveries: done.TotalDiscoveries,
			TotalMonsters:    done.TotalMonsters,
		}
		if err := h.Personal.Save(ctx, account, snapshot); err != nil {
			log.Printf("[syncer] failed to save personal dex for %s: %v", account, err)
		}
	}

	if h.Hub != nil && done.CommunityUpdated {
		h.Hub.BroadcastJSON(CommunityUpdate{
			Type:          "community.update",
			Account:       account,
			LastUpdated:   done.LastUpdated,
			TotalMonsters: done.TotalMonsters,
			At:            time.Now().UTC(),
		})
	}
}

// Status reports whether the caller may sync right now.
func (h *Handler) Status(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	ctx := c.Request.Context()

	ok, err := h.Limiter.CanSync(ctx, claims.Account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check sync state"})
		return
	}

	resp := gin.H{"canSync": ok, "minutesUntilNextSync": 0}
	if !ok {
		minutes, err := h.Limiter.MinutesUntilNext(ctx, claims.Account)
		if err == nil {
			resp["minutesUntilNextSync"] = minutes
		}
	}
	if last, found, err := h.Limiter.LastSyncAt(ctx, claims.Account); err == nil && found {
		resp["lastSyncAt"] = last.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

func writeEventLine(c *gin.Context, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	b = append(b, '\n')
	if _, err := c.Writer.Write(b); err != nil {
		return
	}
	c.Writer.Flush()
}
