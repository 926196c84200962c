package forge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"dungeonhub/pkg/models"
)

// rawDump mirrors the upstream forge export. Most fields are optional in the
// dump, so everything is a pointer and normalization fills the gaps.
type rawDump struct {
	Data struct {
		Recipes []rawRecipe `json:"recipes"`
	} `json:"data"`
}

type rawRecipe struct {
	Recipe *struct {
		ID             *int     `json:"id"`
		Name           *string  `json:"name"`
		Description    *string  `json:"description"`
		ImageURL       *string  `json:"imageUrl"`
		DiscountedCost *float64 `json:"discountedCost"`
		BaseCost       *float64 `json:"baseCost"`
		CostCurrency   *string  `json:"costCurrency"`
	} `json:"recipe"`
	Requirements []struct {
		ItemID   *int `json:"itemId"`
		Quantity *int `json:"quantity"`
		Item     *struct {
			Name     *string `json:"name"`
			ImageURL *string `json:"imageUrl"`
		} `json:"item"`
	} `json:"requirements"`
}

// Catalog holds the normalized recipe list, loaded once from the dump file.
type Catalog struct {
	once    sync.Once
	path    string
	recipes []models.ForgeRecipe
	loadErr error
}

func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

func (c *Catalog) Recipes() ([]models.ForgeRecipe, error) {
	c.once.Do(func() {
		c.recipes, c.loadErr = loadRecipes(c.path)
	})
	return c.recipes, c.loadErr
}

func loadRecipes(path string) ([]models.ForgeRecipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forge dump: %w", err)
	}

	var dump rawDump
	if err := json.Unmarshal(b, &dump); err != nil {
		return nil, fmt.Errorf("decode forge dump: %w", err)
	}

	recipes := make([]models.ForgeRecipe, 0, len(dump.Data.Recipes))
	for _, raw := range dump.Data.Recipes {
		recipes = append(recipes, normalizeRecipe(raw))
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].RecipeID < recipes[j].RecipeID
	})
	return recipes, nil
}

// normalizeRecipe fills dump gaps with stable defaults: "Unknown Recipe" and
// -1 for a nameless recipe, the discounted cost when present else the base
// cost, DRUBBLE as the default currency.
func normalizeRecipe(raw rawRecipe) models.ForgeRecipe {
	rec := models.ForgeRecipe{
		RecipeID:     -1,
		RecipeName:   "Unknown Recipe",
		CostCurrency: "DRUBBLE",
	}

	if r := raw.Recipe; r != nil {
		if r.ID != nil {
			rec.RecipeID = *r.ID
		}
		if r.Name != nil && strings.TrimSpace(*r.Name) != "" {
			rec.RecipeName = strings.TrimSpace(*r.Name)
		}
		if r.Description != nil {
			rec.Description = strings.TrimSpace(*r.Description)
		}
		if r.ImageURL != nil {
			rec.RecipeImageURL = *r.ImageURL
		}
		if r.DiscountedCost != nil {
			rec.Cost = *r.DiscountedCost
		} else if r.BaseCost != nil {
			rec.Cost = *r.BaseCost
		}
		if r.CostCurrency != nil && strings.TrimSpace(*r.CostCurrency) != "" {
			rec.CostCurrency = strings.TrimSpace(*r.CostCurrency)
		}
	}

	rec.Requirements = make([]models.ForgeRequirement, 0, len(raw.Requirements))
	for _, rq := range raw.Requirements {
		req := models.ForgeRequirement{Name: "Unknown"}
		if rq.ItemID != nil {
			req.ItemID = *rq.ItemID
		}
		if rq.Quantity != nil {
			req.Quantity = *rq.Quantity
		}
		if rq.Item != nil {
			if rq.Item.Name != nil && strings.TrimSpace(*rq.Item.Name) != "" {
				req.Name = strings.TrimSpace(*rq.Item.Name)
			}
			if rq.Item.ImageURL != nil {
				req.ImageURL = *rq.Item.ImageURL
			}
		}
		rec.Requirements = append(rec.Requirements, req)
	}

	return rec
}

// recipeNames implements fuzzy.Source over recipe names.
type recipeNames []models.ForgeRecipe

func (r recipeNames) Len() int            { return len(r) }
func (r recipeNames) String(i int) string { return r[i].RecipeName }

// Search filters recipes by query. A positive integer query matches recipes
// whose requirements include that item ID; a text query fuzzy-matches recipe
// names and, failing that, falls back to requirement-name substring matches.
// Empty query returns everything.
func Search(recipes []models.ForgeRecipe, query string) []models.ForgeRecipe {
	query = strings.TrimSpace(query)
	if query == "" {
		return recipes
	}

	if id, err := strconv.Atoi(query); err == nil && id > 0 {
		out := make([]models.ForgeRecipe, 0, 4)
		for _, rec := range recipes {
			for _, req := range rec.Requirements {
				if req.ItemID == id {
					out = append(out, rec)
					break
				}
			}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, recipeNames(recipes))
	out := make([]models.ForgeRecipe, 0, len(matches))
	seen := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		out = append(out, recipes[match.Index])
		seen[match.Index] = struct{}{}
	}

	lower := strings.ToLower(query)
	for i, rec := range recipes {
		if _, ok := seen[i]; ok {
			continue
		}
		for _, req := range rec.Requirements {
			if strings.Contains(strings.ToLower(req.Name), lower) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
