package forge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonhub/pkg/models"
)

const sampleDump = `{
  "data": {
    "recipes": [
      {
        "recipe": {
          "id": 2,
          "name": " Moss Ward Charm ",
          "baseCost": 400
        },
        "requirements": [
          {"itemId": 302, "quantity": 2, "item": {"name": "Moss Heart"}},
          {"quantity": 1, "item": null}
        ]
      },
      {
        "recipe": {
          "id": 1,
          "name": "Verdant Blade",
          "description": "A short sword grown rather than forged.",
          "baseCost": 1200,
          "discountedCost": 950,
          "costCurrency": "SEED"
        },
        "requirements": [
          {"itemId": 301, "quantity": 4, "item": {"name": "Verdant Core"}}
        ]
      },
      {
        "requirements": []
      }
    ]
  }
}`

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forge.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalogLoadsAndNormalizes(t *testing.T) {
	cat := NewCatalog(writeDump(t, sampleDump))

	recipes, err := cat.Recipes()
	require.NoError(t, err)
	require.Len(t, recipes, 3)

	// sorted by id, the id-less one first
	assert.Equal(t, -1, recipes[0].RecipeID)
	assert.Equal(t, "Unknown Recipe", recipes[0].RecipeName)
	assert.Equal(t, "DRUBBLE", recipes[0].CostCurrency)

	blade := recipes[1]
	assert.Equal(t, 1, blade.RecipeID)
	assert.Equal(t, "Verdant Blade", blade.RecipeName)
	assert.Equal(t, 950.0, blade.Cost, "discounted cost wins over base cost")
	assert.Equal(t, "SEED", blade.CostCurrency)

	charm := recipes[2]
	assert.Equal(t, "Moss Ward Charm", charm.RecipeName, "names are trimmed")
	assert.Equal(t, 400.0, charm.Cost)
	require.Len(t, charm.Requirements, 2)
	assert.Equal(t, "Moss Heart", charm.Requirements[0].Name)
	assert.Equal(t, "Unknown", charm.Requirements[1].Name, "missing item block falls back")
}

func TestCatalogMissingFile(t *testing.T) {
	cat := NewCatalog(filepath.Join(t.TempDir(), "nope.json"))
	_, err := cat.Recipes()
	assert.Error(t, err)
}

func testRecipes() []models.ForgeRecipe {
	return []models.ForgeRecipe{
		{
			RecipeID:   1,
			RecipeName: "Verdant Blade",
			Requirements: []models.ForgeRequirement{
				{ItemID: 301, Name: "Verdant Core", Quantity: 4},
			},
		},
		{
			RecipeID:   2,
			RecipeName: "Moss Ward Charm",
			Requirements: []models.ForgeRequirement{
				{ItemID: 302, Name: "Moss Heart", Quantity: 2},
			},
		},
	}
}

func TestSearchByRecipeName(t *testing.T) {
	got := Search(testRecipes(), "verdant blade")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].RecipeID)
}

func TestSearchByRequirementItemID(t *testing.T) {
	got := Search(testRecipes(), "302")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].RecipeID)

	assert.Empty(t, Search(testRecipes(), "999"))
}

func TestSearchByRequirementName(t *testing.T) {
	got := Search(testRecipes(), "moss heart")
	require.NotEmpty(t, got)
	assert.Equal(t, 2, got[0].RecipeID)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	assert.Len(t, Search(testRecipes(), ""), 2)
}
