package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/vedawell/backend/internal/nutrition"
	"github.com/vedawell/backend/internal/recipeapi"
)

// Assistant answers free-text wellness questions with keyword intent
// matching. It reuses the recipe search client for food lookups and falls
// back to static guidance when nothing matches.
type Assistant struct {
	searcher RecipeSearcher
}

func NewAssistant(searcher RecipeSearcher) *Assistant {
	return &Assistant{searcher: searcher}
}

// AssistantReply is one assistant turn.
type AssistantReply struct {
	Intent  string            `json:"intent"`
	Message string            `json:"message"`
	Recipes []FormattedRecipe `json:"recipes,omitempty"`
	Targets *AssistantTargets `json:"targets,omitempty"`
}

// FormattedRecipe is a recipe rendered for chat. Macros the vendor left
// blank are estimated from the calorie value.
type FormattedRecipe struct {
	Name      string  `json:"name"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	PrepTime  string  `json:"prep_time,omitempty"`
	Estimated bool    `json:"estimated_macros"`
}

// AssistantTargets carries a calorie-needs answer.
type AssistantTargets struct {
	BMR           float64 `json:"bmr"`
	DailyCalories float64 `json:"daily_calories"`
	Goal          string  `json:"goal"`
}

// Intent keywords, checked in order. The first intent whose keyword list
// matches the lowercased message wins.
var assistantIntents = []struct {
	name     string
	keywords []string
}{
	{"calorie_needs", []string{"how many calories", "calorie needs", "calories should i", "daily calories"}},
	{"recipe_search", []string{"recipe", "what can i cook", "what should i eat", "meal idea", "dish"}},
	{"hydration", []string{"water", "hydration", "drink"}},
	{"sleep", []string{"sleep", "insomnia", "rest"}},
	{"digestion", []string{"digestion", "bloating", "constipation", "acidity"}},
}

var assistantTips = map[string]string{
	"hydration": "Aim for 8-10 glasses of warm water spread through the day. Sipping warm water before meals supports digestion.",
	"digestion": "Favor warm, freshly cooked meals and eat your largest meal at midday when digestion is strongest. Ginger tea before meals can help.",
	"sleep":     "Keep a consistent bedtime, avoid heavy food within three hours of sleeping, and try warm milk with a pinch of nutmeg.",
	"fallback":  "I can help with recipe ideas, daily calorie needs, hydration, sleep and digestion. Try asking for a recipe with an ingredient you like.",
}

// Macro estimation split applied when the vendor omits macro values:
// 20% of calories from protein, 50% from carbs, 30% from fat, converted
// at 4/4/9 kcal per gram.
const (
	proteinCalorieShare = 0.20
	carbCalorieShare    = 0.50
	fatCalorieShare     = 0.30
)

// Respond handles one chat turn. The profile is optional; without one the
// calorie-needs intent degrades to a generic answer.
func (a *Assistant) Respond(ctx context.Context, message string, profile *nutrition.PatientProfile) AssistantReply {
	lowered := strings.ToLower(message)
	intent := classifyIntent(lowered)

	switch intent {
	case "calorie_needs":
		return a.calorieNeedsReply(lowered, profile)
	case "recipe_search":
		return a.recipeReply(ctx, lowered, profile)
	case "hydration", "sleep", "digestion":
		return AssistantReply{Intent: intent, Message: assistantTips[intent]}
	default:
		return AssistantReply{Intent: "fallback", Message: assistantTips["fallback"]}
	}
}

func classifyIntent(lowered string) string {
	for _, intent := range assistantIntents {
		for _, keyword := range intent.keywords {
			if strings.Contains(lowered, keyword) {
				return intent.name
			}
		}
	}
	return "fallback"
}

func (a *Assistant) calorieNeedsReply(lowered string, profile *nutrition.PatientProfile) AssistantReply {
	if profile == nil || profile.Weight <= 0 || profile.Height <= 0 || profile.Age <= 0 {
		return AssistantReply{
			Intent:  "calorie_needs",
			Message: "I need your weight, height, age and gender on file to estimate calorie needs. Please complete your health assessment first.",
		}
	}

	goal := "maintenance"
	switch {
	case strings.Contains(lowered, "lose") || strings.Contains(lowered, "loss"):
		goal = "weight_loss"
	case strings.Contains(lowered, "gain"):
		goal = "weight_gain"
	}

	bmr := nutrition.BMRMifflinStJeor(profile.Weight, profile.Height, profile.Age, profile.Gender)
	daily := nutrition.EstimateDailyCalories(*profile, goal)

	return AssistantReply{
		Intent: "calorie_needs",
		Message: fmt.Sprintf("Your estimated basal metabolic rate is %d kcal. For %s at your activity level, aim for about %d kcal per day.",
			int(math.Round(bmr)), strings.ReplaceAll(goal, "_", " "), int(math.Round(daily))),
		Targets: &AssistantTargets{
			BMR:           math.Round(bmr),
			DailyCalories: math.Round(daily),
			Goal:          goal,
		},
	}
}

func (a *Assistant) recipeReply(ctx context.Context, lowered string, profile *nutrition.PatientProfile) AssistantReply {
	filters := recipeapi.SearchFilters{
		IncludeIngredients: extractIngredients(lowered),
		Page:               1,
		Limit:              5,
	}
	if profile != nil {
		filters.ExcludeIngredients = nutrition.BuildExcludeIngredients(*profile)
	}

	recipes, err := a.searcher.Search(ctx, filters)
	if err != nil {
		log.Printf("assistant recipe search failed: %v", err)
		recipes = nil
	}

	if len(recipes) == 0 {
		return AssistantReply{
			Intent:  "recipe_search",
			Message: "I couldn't find a matching recipe right now. " + assistantTips["fallback"],
		}
	}

	formatted := make([]FormattedRecipe, 0, len(recipes))
	for _, r := range recipes {
		formatted = append(formatted, FormatRecipe(r))
	}

	return AssistantReply{
		Intent:  "recipe_search",
		Message: fmt.Sprintf("Here are %d recipes you could try:", len(formatted)),
		Recipes: formatted,
	}
}

// knownIngredients maps chat vocabulary onto search terms. Kept small on
// purpose; unmatched messages still run an unconstrained search.
var knownIngredients = []string{
	"rice", "lentil", "dal", "spinach", "paneer", "chicken", "fish",
	"oats", "quinoa", "chickpea", "potato", "tomato", "yogurt", "millet",
	"egg", "tofu", "mushroom", "carrot", "beetroot", "banana", "apple",
}

func extractIngredients(lowered string) []string {
	var found []string
	for _, ingredient := range knownIngredients {
		if strings.Contains(lowered, ingredient) {
			found = append(found, ingredient)
		}
	}
	return found
}

// FormatRecipe renders a recipe for chat, estimating macros from calories
// when the vendor omitted them.
func FormatRecipe(r recipeapi.Recipe) FormattedRecipe {
	formatted := FormattedRecipe{
		Name:     r.Name,
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fat:      r.Fat,
		PrepTime: r.PrepTime,
	}

	if r.Calories > 0 && r.Protein == 0 && r.Carbs == 0 && r.Fat == 0 {
		formatted.Protein = round1(r.Calories * proteinCalorieShare / 4)
		formatted.Carbs = round1(r.Calories * carbCalorieShare / 4)
		formatted.Fat = round1(r.Calories * fatCalorieShare / 9)
		formatted.Estimated = true
	}

	return formatted
}
