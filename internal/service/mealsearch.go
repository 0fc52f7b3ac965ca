package service

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/vedawell/backend/internal/nutrition"
	"github.com/vedawell/backend/internal/recipeapi"
)

// RecipeSearcher is the slice of the vendor client the meal search needs.
type RecipeSearcher interface {
	Search(ctx context.Context, filters recipeapi.SearchFilters) ([]recipeapi.Recipe, error)
	SearchByDiet(ctx context.Context, dietKey string, limit, page int) ([]recipeapi.Recipe, error)
	SearchByCalorieRange(ctx context.Context, min, max float64, limit, page int) ([]recipeapi.Recipe, error)
}

const (
	searchPageSize = 20
	randomPagePool = 5

	maxIncludeSample  = 3
	maxExcludeSample  = 5
	maxCategorySample = 3

	calorieWindowBelow = 150
	calorieWindowAbove = 200

	// How many unfiltered results to keep when calorie post-filtering
	// empties an otherwise successful search.
	unfilteredKeep = 5
)

// MealSearch finds recipe candidates for one meal slot using an ordered
// fallback chain: constraint search, diet search, calorie-only search.
// Remote failures at any tier count as zero results for that tier and never
// reach the caller.
type MealSearch struct {
	searcher RecipeSearcher
	rng      *rand.Rand
}

// NewMealSearch builds a meal search over a vendor client. rng drives
// ingredient sampling and page selection; pass a seeded source in tests for
// deterministic behavior. A nil rng gets a time-seeded one.
func NewMealSearch(searcher RecipeSearcher, rng *rand.Rand) *MealSearch {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MealSearch{searcher: searcher, rng: rng}
}

// FetchRecipesForMeal returns candidates for a slot, possibly none. Each
// fallback tier runs only when every earlier tier produced nothing.
func (m *MealSearch) FetchRecipesForMeal(
	ctx context.Context,
	slot nutrition.MealSlot,
	dailyCalories float64,
	dietKey string,
	exclude, include, focusCategories []string,
) []recipeapi.Recipe {
	target := dailyCalories * slot.CalorieFraction
	minCal := target - calorieWindowBelow
	maxCal := target + calorieWindowAbove

	tiers := []func(context.Context) []recipeapi.Recipe{
		func(ctx context.Context) []recipeapi.Recipe {
			return m.constraintTier(ctx, minCal, maxCal, exclude, include, focusCategories)
		},
		func(ctx context.Context) []recipeapi.Recipe {
			return m.dietTier(ctx, minCal, maxCal, dietKey)
		},
		func(ctx context.Context) []recipeapi.Recipe {
			return m.calorieTier(ctx, minCal, maxCal)
		},
	}

	for _, tier := range tiers {
		if recipes := tier(ctx); len(recipes) > 0 {
			return recipes
		}
	}
	return nil
}

// constraintTier searches on sampled include/exclude ingredients and focus
// categories. If calorie filtering empties a non-empty result, the first
// few unfiltered candidates are kept instead of escalating.
func (m *MealSearch) constraintTier(ctx context.Context, minCal, maxCal float64, exclude, include, focusCategories []string) []recipeapi.Recipe {
	if len(include) == 0 && len(exclude) == 0 {
		return nil
	}

	filters := recipeapi.SearchFilters{
		IncludeIngredients: m.sample(include, maxIncludeSample),
		ExcludeIngredients: m.sample(exclude, maxExcludeSample),
		IncludeCategories:  m.sample(focusCategories, maxCategorySample),
		Page:               1 + m.rng.Intn(randomPagePool),
		Limit:              searchPageSize,
	}

	recipes, err := m.searcher.Search(ctx, filters)
	if err != nil {
		log.Printf("constraint recipe search failed, falling back: %v", err)
		return nil
	}
	if len(recipes) == 0 {
		return nil
	}

	if filtered := filterByCalories(recipes, minCal, maxCal); len(filtered) > 0 {
		return filtered
	}
	return recipes[:minInt(unfilteredKeep, len(recipes))]
}

func (m *MealSearch) dietTier(ctx context.Context, minCal, maxCal float64, dietKey string) []recipeapi.Recipe {
	if dietKey == "" {
		return nil
	}

	recipes, err := m.searcher.SearchByDiet(ctx, dietKey, searchPageSize, 1+m.rng.Intn(randomPagePool))
	if err != nil {
		log.Printf("diet recipe search failed, falling back: %v", err)
		return nil
	}
	if len(recipes) == 0 {
		return nil
	}

	if filtered := filterByCalories(recipes, minCal, maxCal); len(filtered) > 0 {
		return filtered
	}
	return recipes[:minInt(unfilteredKeep, len(recipes))]
}

// calorieTier is the last resort and returns whatever the vendor sends
// back, without further filtering.
func (m *MealSearch) calorieTier(ctx context.Context, minCal, maxCal float64) []recipeapi.Recipe {
	recipes, err := m.searcher.SearchByCalorieRange(ctx, minCal, maxCal, searchPageSize, 1)
	if err != nil {
		log.Printf("calorie recipe search failed: %v", err)
		return nil
	}
	return recipes
}

// sample picks up to n distinct items in random order.
func (m *MealSearch) sample(items []string, n int) []string {
	if len(items) == 0 {
		return nil
	}
	if len(items) <= n {
		out := make([]string, len(items))
		copy(out, items)
		m.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	picked := m.rng.Perm(len(items))[:n]
	out := make([]string, 0, n)
	for _, idx := range picked {
		out = append(out, items[idx])
	}
	return out
}

func filterByCalories(recipes []recipeapi.Recipe, min, max float64) []recipeapi.Recipe {
	var out []recipeapi.Recipe
	for _, r := range recipes {
		if r.Calories >= min && r.Calories <= max {
			out = append(out, r)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
