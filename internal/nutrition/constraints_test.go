package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExcludeIngredients_AllergyExpansion(t *testing.T) {
	// Every category's full literal list must appear when only that
	// allergy is set.
	for _, category := range AllergyCategories() {
		t.Run(category, func(t *testing.T) {
			profile := PatientProfile{Allergies: []string{category}}
			exclude := BuildExcludeIngredients(profile)

			for _, term := range allergyIngredients[category] {
				assert.Contains(t, exclude, term)
			}
		})
	}
}

func TestBuildExcludeIngredients_FreeTextAvoidances(t *testing.T) {
	profile := PatientProfile{Avoidances: " Okra, Brinjal ,, mushroom "}

	exclude := BuildExcludeIngredients(profile)

	assert.Contains(t, exclude, "okra")
	assert.Contains(t, exclude, "brinjal")
	assert.Contains(t, exclude, "mushroom")
	assert.NotContains(t, exclude, "")
}

func TestBuildExcludeIngredients_MergesLifeStageAndConstitution(t *testing.T) {
	profile := PatientProfile{
		LifeStage: LifeStagePregnancy,
		Trimester: "second",
		BodyFrame: "thin", // classifies vata
	}

	exclude := BuildExcludeIngredients(profile)

	assert.Contains(t, exclude, "alcohol", "life-stage avoid list")
	assert.Contains(t, exclude, "cold drinks", "constitutional avoid list")
}

func TestBuildExcludeIngredients_UnmappedAllergyKeptLiteral(t *testing.T) {
	profile := PatientProfile{Allergies: []string{"Sesame"}}

	assert.Contains(t, BuildExcludeIngredients(profile), "sesame")
}

func TestBuildExcludeIngredients_Deduplicates(t *testing.T) {
	profile := PatientProfile{
		Allergies:  []string{"dairy", "dairy"},
		Avoidances: "milk, cheese",
	}

	exclude := BuildExcludeIngredients(profile)

	seen := make(map[string]int)
	for _, term := range exclude {
		seen[term]++
	}
	for term, count := range seen {
		assert.Equal(t, 1, count, "duplicate term %q", term)
	}
}

func TestBuildIncludeIngredients_NeverIntersectsExclude(t *testing.T) {
	profiles := []PatientProfile{
		{},
		{LifeStage: LifeStagePregnancy, Trimester: "third", BodyFrame: "thin"},
		{LifeStage: LifeStagePostpartum, Breastfeeding: "yes", BodyFrame: "large", Allergies: []string{"nuts", "dairy"}},
		{LifeStage: LifeStageMenopause, BodyFrame: "medium", Avoidances: "tofu, flaxseed, cucumber"},
		{Allergies: AllergyCategories()},
	}

	for _, profile := range profiles {
		include := BuildIncludeIngredients(profile)
		exclude := BuildExcludeIngredients(profile)

		excluded := make(map[string]bool)
		for _, term := range exclude {
			excluded[term] = true
		}
		for _, term := range include {
			assert.False(t, excluded[term], "include set leaked excluded term %q", term)
		}
	}
}

func TestBuildIncludeIngredients_UnionsFocusAndFavorable(t *testing.T) {
	profile := PatientProfile{
		LifeStage: LifeStageMenopause,
		BodyFrame: "medium", // classifies pitta
	}

	include := BuildIncludeIngredients(profile)

	require.NotEmpty(t, include)
	assert.Contains(t, include, "flaxseed", "menopause focus list")
	assert.Contains(t, include, "cucumber", "pitta favorable items")
}

func TestBuildIncludeIngredients_SubtractsDeclaredAvoidances(t *testing.T) {
	profile := PatientProfile{
		LifeStage:  LifeStageMenopause,
		Avoidances: "tofu",
	}

	include := BuildIncludeIngredients(profile)

	assert.NotContains(t, include, "tofu")
	assert.Contains(t, include, "flaxseed")
}
