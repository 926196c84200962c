package models

// ForgeRequirement is one ingredient of a forge recipe.
type ForgeRequirement struct {
	ItemID   int    `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ForgeRecipe is a craftable item with its cost and ingredient list,
// normalized from the upstream forge dump.
type ForgeRecipe struct {
	RecipeID       int                `json:"recipeId"`
	RecipeName     string             `json:"recipeName"`
	Description    string             `json:"description,omitempty"`
	RecipeImageURL string             `json:"recipeImageUrl,omitempty"`
	Cost           float64            `json:"cost"`
	CostCurrency   string             `json:"costCurrency"`
	Requirements   []ForgeRequirement `json:"requirements"`
}
