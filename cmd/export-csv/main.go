// Command export-csv flattens the community dataset into CSV files for
// spreadsheet work: one row per monster, one row per (monster, drop).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dungeonhub/internal/blobstore"
	"dungeonhub/internal/dex"
	"dungeonhub/pkg/models"
	"dungeonhub/pkg/utils"
)

func main() {
	var (
		configPath  = flag.String("config", "dungeonhub.toml", "path to config file")
		monstersOut = flag.String("monsters", "data/monsters.csv", "output CSV path for monsters")
		dropsOut    = flag.String("drops", "data/drops.csv", "output CSV path for drops")
	)
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := blobstore.NewFileStore(cfg.Storage.Path)
	data, err := store.Read(ctx)
	if err != nil {
		log.Fatalf("read community data failed: %v", err)
	}

	if err := exportMonsters(data, *monstersOut); err != nil {
		log.Fatalf("export monsters failed: %v", err)
	}
	if err := exportDrops(data, *dropsOut); err != nil {
		log.Fatalf("export drops failed: %v", err)
	}

	log.Printf("✅ exported %d monsters to %s and drops to %s", len(data.Monsters), *monstersOut, *dropsOut)
}

func exportMonsters(data *models.MonsterDexData, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"monster_id", "name", "type", "class", "floor", "drop_count", "unidentified_drops", "fully_discovered"}); err != nil {
		return err
	}

	for _, m := range data.Monsters {
		floor := ""
		if m.Floor != nil {
			floor = m.Floor.Name
		}
		d := dex.Classify(m)

		if err := w.Write([]string{
			strconv.Itoa(m.MonsterID),
			m.MonsterName,
			m.MonsterType,
			m.MonsterClass,
			floor,
			strconv.Itoa(len(m.Drops)),
			strconv.Itoa(d.UnidentifiedDropCount),
			strconv.FormatBool(d.FullyDiscovered),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportDrops(data *models.MonsterDexData, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"monster_id", "monster_name", "item_id", "item_name", "drop_chance", "min_quantity", "max_quantity", "boss_drop", "unlocked", "name_warning"}); err != nil {
		return err
	}

	for _, m := range data.Monsters {
		for _, d := range m.Drops {
			if dex.IsDummyDrop(d) {
				continue
			}
			if err := w.Write([]string{
				strconv.Itoa(m.MonsterID),
				m.MonsterName,
				strconv.Itoa(d.ItemID),
				d.ItemName,
				strconv.FormatFloat(d.DropChance, 'f', -1, 64),
				strconv.FormatFloat(d.MinQuantity, 'f', -1, 64),
				strconv.FormatFloat(d.MaxQuantity, 'f', -1, 64),
				strconv.FormatBool(d.BossDrop),
				strconv.FormatBool(d.Unlocked),
				strconv.FormatBool(d.ItemNameWarning),
			}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
