// Command sync-cli runs one sync from the terminal with a raw game token,
// printing each phase event and committing to the configured blob store.
// Useful against the stub server when working on the pipeline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dungeonhub/internal/blobstore"
	"dungeonhub/internal/community"
	"dungeonhub/internal/syncer"
	"dungeonhub/internal/upstream"
	"dungeonhub/pkg/utils"
)

func main() {
	var (
		configPath = flag.String("config", "dungeonhub.toml", "path to config file")
		token      = flag.String("token", "", "game API token (or DUNGEONHUB_GAME_TOKEN)")
	)
	flag.Parse()

	gameToken := *token
	if gameToken == "" {
		gameToken = os.Getenv("DUNGEONHUB_GAME_TOKEN")
	}
	if gameToken == "" {
		log.Fatal("game token required: pass -token or set DUNGEONHUB_GAME_TOKEN")
	}

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := upstream.NewClient(cfg.Upstream.ActionURL, cfg.Upstream.AuthURL)
	store := blobstore.NewFileStore(cfg.Storage.Path)
	pipeline := syncer.NewPipeline(client, community.NewService(store), cfg.RequestDelay())

	failed := false
	for ev := range pipeline.Run(ctx, gameToken) {
		b, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Println(string(b))

		if _, isErr := ev.(syncer.Error); isErr {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
