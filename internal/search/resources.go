package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"dungeonhub/internal/dex"
	"dungeonhub/pkg/models"
)

// resourceRows implements fuzzy.Source over the flattened drop rows.
type resourceRows []models.ResourceRow

func (rows resourceRows) Len() int { return len(rows) }

func (rows resourceRows) String(i int) string { return rows[i].ResourceName }

// BuildResourceRows flattens the community dataset into one row per
// (monster, unlocked drop). Rows keep the upstream name when it is reliable
// and fall back to the name derived from the item's image URL otherwise.
func BuildResourceRows(data *models.MonsterDexData) []models.ResourceRow {
	rows := make([]models.ResourceRow, 0, len(data.Monsters)*4)
	for _, m := range data.Monsters {
		location := "Unknown"
		if m.Floor != nil {
			location = m.Floor.Name
			if m.Floor.FloorNumber > 0 {
				location = fmt.Sprintf("%s / Floor %d", m.Floor.Name, m.Floor.FloorNumber)
			}
		}

		for _, d := range m.Drops {
			if !d.Unlocked || dex.IsDummyDrop(d) {
				continue
			}

			name := d.ItemName
			if !d.HasReliableName() && d.DerivedItemName != "" {
				name = d.DerivedItemName
			}

			rows = append(rows, models.ResourceRow{
				Key:              fmt.Sprintf("%d-%d", m.MonsterID, d.ItemID),
				ResourceName:     name,
				OriginalItemName: d.ItemName,
				DerivedItemName:  d.DerivedItemName,
				NameWarning:      d.ItemNameWarning,
				ResourceID:       d.ItemID,
				ItemImageURL:     d.ItemImageURL,
				DropChance:       d.DropChance,
				MinQuantity:      d.MinQuantity,
				MaxQuantity:      d.MaxQuantity,
				MonsterName:      m.MonsterName,
				MonsterImageURL:  m.MonsterImageURL,
				Location:         location,
			})
		}
	}
	return rows
}

// FilterRows narrows rows by query. A purely numeric query matches item IDs
// exactly; anything else fuzzy-matches resource names, best matches first.
// An empty query returns the rows unchanged.
func FilterRows(rows []models.ResourceRow, query string) []models.ResourceRow {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}

	if id, err := strconv.Atoi(query); err == nil {
		out := make([]models.ResourceRow, 0, 4)
		for _, r := range rows {
			if r.ResourceID == id {
				out = append(out, r)
			}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, resourceRows(rows))
	out := make([]models.ResourceRow, len(matches))
	for i, match := range matches {
		out[i] = rows[match.Index]
	}
	return out
}

// Paginate slices rows for a 1-based page. Out-of-range pages yield an empty
// slice, never an error.
func Paginate(rows []models.ResourceRow, page, pageSize int) []models.ResourceRow {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []models.ResourceRow{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
