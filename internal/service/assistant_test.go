package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedawell/backend/internal/nutrition"
	"github.com/vedawell/backend/internal/recipeapi"
)

func TestAssistantIntents(t *testing.T) {
	assistant := NewAssistant(&fakeSearcher{})

	cases := []struct {
		message string
		intent  string
	}{
		{"How much water should I drink daily?", "hydration"},
		{"I have trouble with sleep lately", "sleep"},
		{"What helps with bloating after meals?", "digestion"},
		{"Tell me a joke", "fallback"},
	}

	for _, tc := range cases {
		reply := assistant.Respond(context.Background(), tc.message, nil)
		assert.Equal(t, tc.intent, reply.Intent, tc.message)
		assert.NotEmpty(t, reply.Message)
	}
}

func TestAssistantCalorieNeeds(t *testing.T) {
	assistant := NewAssistant(&fakeSearcher{})
	profile := &nutrition.PatientProfile{
		Age: 30, Gender: "male", Weight: 70, Height: 175,
		ActivityLevel: "moderate",
	}

	t.Run("with a complete profile", func(t *testing.T) {
		reply := assistant.Respond(context.Background(), "How many calories should I eat?", profile)

		assert.Equal(t, "calorie_needs", reply.Intent)
		require.NotNil(t, reply.Targets)
		// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
		assert.Equal(t, 1649.0, reply.Targets.BMR)
		assert.Equal(t, 2556.0, reply.Targets.DailyCalories)
		assert.Equal(t, "maintenance", reply.Targets.Goal)
	})

	t.Run("goal keywords adjust the estimate", func(t *testing.T) {
		reply := assistant.Respond(context.Background(), "how many calories to lose weight?", profile)
		require.NotNil(t, reply.Targets)
		assert.Equal(t, "weight_loss", reply.Targets.Goal)
		assert.Equal(t, 2156.0, reply.Targets.DailyCalories)

		reply = assistant.Respond(context.Background(), "daily calories to gain muscle?", profile)
		require.NotNil(t, reply.Targets)
		assert.Equal(t, "weight_gain", reply.Targets.Goal)
		assert.Equal(t, 2956.0, reply.Targets.DailyCalories)
	})

	t.Run("without a profile", func(t *testing.T) {
		reply := assistant.Respond(context.Background(), "How many calories should I eat?", nil)
		assert.Equal(t, "calorie_needs", reply.Intent)
		assert.Nil(t, reply.Targets)
		assert.Contains(t, reply.Message, "health assessment")
	})
}

func TestAssistantRecipeSearch(t *testing.T) {
	t.Run("extracts known ingredients into the search", func(t *testing.T) {
		fake := &fakeSearcher{searchRecipes: []recipeapi.Recipe{
			{Name: "Palak Paneer", Calories: 420, Protein: 18, Carbs: 12, Fat: 30},
		}}
		assistant := NewAssistant(fake)

		reply := assistant.Respond(context.Background(), "Give me a recipe with spinach and paneer", nil)

		assert.Equal(t, "recipe_search", reply.Intent)
		require.Len(t, reply.Recipes, 1)
		assert.Equal(t, "Palak Paneer", reply.Recipes[0].Name)
		assert.False(t, reply.Recipes[0].Estimated)

		require.Len(t, fake.searchFilters, 1)
		assert.ElementsMatch(t, []string{"spinach", "paneer"}, fake.searchFilters[0].IncludeIngredients)
	})

	t.Run("profile allergies become exclusions", func(t *testing.T) {
		fake := &fakeSearcher{searchRecipes: []recipeapi.Recipe{{Name: "Oats Bowl", Calories: 300}}}
		assistant := NewAssistant(fake)
		profile := &nutrition.PatientProfile{Allergies: []string{"dairy"}}

		assistant.Respond(context.Background(), "any recipe with oats?", profile)

		require.Len(t, fake.searchFilters, 1)
		assert.Contains(t, fake.searchFilters[0].ExcludeIngredients, "milk")
	})

	t.Run("search failure falls back to tips", func(t *testing.T) {
		fake := &fakeSearcher{searchErr: errors.New("down")}
		assistant := NewAssistant(fake)

		reply := assistant.Respond(context.Background(), "recipe for dinner", nil)

		assert.Equal(t, "recipe_search", reply.Intent)
		assert.Empty(t, reply.Recipes)
		assert.NotEmpty(t, reply.Message)
	})
}

func TestFormatRecipe(t *testing.T) {
	t.Run("estimates macros only when all are missing", func(t *testing.T) {
		formatted := FormatRecipe(recipeapi.Recipe{Name: "Khichdi", Calories: 450})

		assert.True(t, formatted.Estimated)
		assert.Equal(t, 22.5, formatted.Protein)
		assert.Equal(t, 56.3, formatted.Carbs)
		assert.Equal(t, 15.0, formatted.Fat)
	})

	t.Run("keeps vendor macros untouched", func(t *testing.T) {
		formatted := FormatRecipe(recipeapi.Recipe{Name: "Dal", Calories: 500, Protein: 22})

		assert.False(t, formatted.Estimated)
		assert.Equal(t, 22.0, formatted.Protein)
		assert.Equal(t, 0.0, formatted.Carbs)
	})

	t.Run("no calories means no estimate", func(t *testing.T) {
		formatted := FormatRecipe(recipeapi.Recipe{Name: "Mystery"})
		assert.False(t, formatted.Estimated)
		assert.Equal(t, 0.0, formatted.Protein)
	})
}
