package recipeapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_UnmarshalPrimaryFieldNames(t *testing.T) {
	payload := `{
		"id": "r-1",
		"name": "Masala Oats",
		"calories": 320,
		"protein": 12,
		"carbs": 48,
		"fat": 9,
		"prep_time": "10 min",
		"cook_time": "15 min",
		"region": "North Indian",
		"servings": "2"
	}`

	var recipe Recipe
	require.NoError(t, json.Unmarshal([]byte(payload), &recipe))

	assert.Equal(t, "r-1", recipe.ID)
	assert.Equal(t, "Masala Oats", recipe.Name)
	assert.Equal(t, 320.0, recipe.Calories)
	assert.Equal(t, 12.0, recipe.Protein)
	assert.Equal(t, 48.0, recipe.Carbs)
	assert.Equal(t, 9.0, recipe.Fat)
	assert.Equal(t, "15 min", recipe.CookTime)
	assert.Equal(t, "2", recipe.Servings)
}

func TestRecipe_UnmarshalAlternateFieldNames(t *testing.T) {
	payload := `{
		"recipe_id": "alt-7",
		"title": "Ragi Dosa",
		"energy_kcal": "285",
		"protein_g": 8.5,
		"carbohydrates_g": 52,
		"fat_g": 4,
		"total_time": "25 min",
		"servings": 3
	}`

	var recipe Recipe
	require.NoError(t, json.Unmarshal([]byte(payload), &recipe))

	assert.Equal(t, "alt-7", recipe.ID)
	assert.Equal(t, "Ragi Dosa", recipe.Name)
	assert.Equal(t, 285.0, recipe.Calories)
	assert.Equal(t, 8.5, recipe.Protein)
	assert.Equal(t, 52.0, recipe.Carbs)
	assert.Equal(t, 4.0, recipe.Fat)
	assert.Equal(t, "25 min", recipe.CookTime)
	assert.Equal(t, "3", recipe.Servings)
}

func TestRecipe_MissingNumericFieldsDefaultToZero(t *testing.T) {
	var recipe Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Plain Khichdi"}`), &recipe))

	assert.Equal(t, 0.0, recipe.Calories)
	assert.Equal(t, 0.0, recipe.Protein)
	assert.Equal(t, 0.0, recipe.Carbs)
	assert.Equal(t, 0.0, recipe.Fat)
	assert.Empty(t, recipe.Servings)
}

func TestRecipe_GarbageNumericValuesDecodeToZero(t *testing.T) {
	var recipe Recipe
	require.NoError(t, json.Unmarshal([]byte(`{"calories": "about 300", "protein": null}`), &recipe))

	assert.Equal(t, 0.0, recipe.Calories)
	assert.Equal(t, 0.0, recipe.Protein)
}
