// Command stub-server mimics the game API for local development: a handful
// of canned monsters behind the single action endpoint, plus a fake
// wallet-signature flow that accepts any signature.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	router := gin.Default()
	router.POST("/api/game/action", handleAction)
	router.POST("/api/user/authenticate", handleAuth)

	log.Printf("[stub] game API stub listening on %s", *addr)
	if err := router.Run(*addr); err != nil {
		log.Fatalf("stub server failed: %v", err)
	}
}

type actionReq struct {
	Action string `json:"action"`
	Params struct {
		DataType  string `json:"dataType"`
		SubAction string `json:"subAction"`
		MonsterID int    `json:"monsterId"`
	} `json:"params"`
}

func handleAction(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing token"})
		return
	}

	var req actionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid json"})
		return
	}

	if req.Action != "GET_GAME_DATA" || req.Params.DataType != "monsterDex" {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "unknown action"})
		return
	}

	switch req.Params.SubAction {
	case "GET_DEX_DATA":
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"totalMonstersInGame": 155,
				"discoveries": []gin.H{
					{"monsterId": 5},
					{"monsterId": 12},
					{"monsterId": 5}, // boss discovery of the same monster
				},
			},
		})
	case "GET_MONSTER_DETAILS":
		detail, ok := monsters[req.Params.MonsterID]
		if !ok {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": fmt.Sprintf("monster %d not found", req.Params.MonsterID)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": detail})
	default:
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "unknown subAction"})
	}
}

var monsters = map[int]gin.H{
	5: {
		"monsterId":                 5,
		"firstEncounteredAt":        "2026-03-04T10:22:00Z",
		"firstEncounteredFloor":     2,
		"firstEncounteredDungeonId": 1,
		"totalEncounters":           14,
		"totalKills":                9,
		"totalDefeats":              2,
		"dungeonInfo":               gin.H{"dungeonId": 1, "name": "Verdant Hollow"},
		"floorInfo":                 gin.H{"floorId": 21, "name": "Mossy Caverns", "floorNumber": 2, "class": "nature"},
		"monster": gin.H{
			"monsterId": 5,
			"name":      "Moss Golem",
			"type":      "elemental",
			"class":     "nature",
			"imageUrl":  "https://cdn.example.com/monsters/mossGolem.png",
		},
		"drops": []gin.H{
			{
				"itemId":      301,
				"dropChance":  "12.5",
				"minQuantity": "1",
				"maxQuantity": "3",
				"unlocked":    true,
				"item": gin.H{
					"itemId":   301,
					"name":     "Verdant Core",
					"class":    "material",
					"imageUrl": "https://cdn.example.com/items/verdantCore.png",
				},
			},
			{
				"itemId":      302,
				"dropChance":  "0",
				"minQuantity": "0",
				"maxQuantity": "0",
				"unlocked":    false,
				"item": gin.H{
					"itemId":   302,
					"name":     "???",
					"class":    "material",
					"imageUrl": "https://cdn.example.com/items/mossHeart.png",
				},
			},
		},
	},
	12: {
		"monsterId":                 12,
		"firstEncounteredAt":        "2026-03-06T18:05:00Z",
		"firstEncounteredFloor":     5,
		"firstEncounteredDungeonId": 1,
		"totalEncounters":           3,
		"totalKills":                1,
		"totalDefeats":              1,
		"totalBossEncounters":       1,
		"totalBossKills":            1,
		"dungeonInfo":               gin.H{"dungeonId": 1, "name": "Verdant Hollow"},
		"floorInfo":                 gin.H{"floorId": 25, "name": "Root Throne", "floorNumber": 5, "class": "nature"},
		"monster": gin.H{
			"monsterId": 12,
			"name":      "Thorn Regent",
			"type":      "boss",
			"class":     "nature",
			"imageUrl":  "https://cdn.example.com/monsters/thornRegent.png",
		},
		"drops": []gin.H{
			{
				"itemId":      310,
				"dropChance":  "45",
				"minQuantity": "1",
				"maxQuantity": "1",
				"bossDrop":    true,
				"unlocked":    true,
				"item": gin.H{
					"itemId":   310,
					"name":     "Regent Crown Shard",
					"class":    "material",
					"imageUrl": "https://cdn.example.com/items/regentCrownShard.png",
				},
			},
		},
	},
}

type authReq struct {
	Account string `json:"account"`
	Result  string `json:"result"`
}

// handleAuth fakes both halves of the wallet flow on one endpoint, the way
// the real API does: no result means challenge, result means verify.
func handleAuth(c *gin.Context) {
	var req authReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Account == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "account required"})
		return
	}

	if req.Result == "" {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Sign this message to log in: nonce-%s", req.Account),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": "stub-game-token-" + req.Account})
}
