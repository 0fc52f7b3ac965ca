package nutrition

import "strings"

// allergyIngredients expands a declared allergy category into the literal
// ingredient terms excluded downstream. Terms are lowercase substrings used
// for contains-style matching against recipe ingredients, not exact tokens.
var allergyIngredients = map[string][]string{
	"dairy":     {"milk", "cheese", "butter", "cream", "yogurt", "ghee", "paneer"},
	"gluten":    {"wheat", "barley", "rye", "semolina", "couscous", "bread"},
	"nuts":      {"almond", "cashew", "walnut", "pistachio", "hazelnut", "pecan"},
	"peanuts":   {"peanut", "groundnut", "peanut butter", "peanut oil"},
	"soy":       {"soy", "tofu", "edamame", "soy sauce", "tempeh", "miso"},
	"eggs":      {"egg", "mayonnaise", "meringue", "albumin"},
	"shellfish": {"shrimp", "prawn", "crab", "lobster", "oyster", "mussel", "clam"},
	"fish":      {"fish", "salmon", "tuna", "cod", "anchovy", "sardine"},
}

// AllergyCategories lists the supported allergy categories in a fixed order.
func AllergyCategories() []string {
	return []string{"dairy", "gluten", "nuts", "peanuts", "soy", "eggs", "shellfish", "fish"}
}

// BuildExcludeIngredients merges allergy expansions, free-text avoidances,
// the life-stage avoid list and the constitutional avoid list into one
// deduplicated exclusion set.
func BuildExcludeIngredients(p PatientProfile) []string {
	var exclude []string

	for _, allergy := range p.Allergies {
		key := strings.ToLower(strings.TrimSpace(allergy))
		if terms, ok := allergyIngredients[key]; ok {
			exclude = append(exclude, terms...)
		} else if key != "" {
			// Unmapped allergies are kept as literal terms.
			exclude = append(exclude, key)
		}
	}

	exclude = append(exclude, splitFreeText(p.Avoidances)...)

	targets := GetNutritionalTargets(p.LifeStage, p.Trimester, p.Breastfeeding, p.MenopauseStage)
	exclude = append(exclude, lowerAll(targets.AvoidList)...)

	prefs := GetConstitutionPreferences(Classify(p).Primary)
	exclude = append(exclude, lowerAll(prefs.AvoidItems)...)

	return dedupe(exclude)
}

// BuildIncludeIngredients unions the life-stage focus list with the
// constitutional favorable items and removes anything already excluded.
// The returned set never intersects BuildExcludeIngredients for the same
// profile.
func BuildIncludeIngredients(p PatientProfile) []string {
	targets := GetNutritionalTargets(p.LifeStage, p.Trimester, p.Breastfeeding, p.MenopauseStage)
	prefs := GetConstitutionPreferences(Classify(p).Primary)

	include := append(lowerAll(targets.FocusList), lowerAll(prefs.FavorableItems)...)
	include = dedupe(include)

	excluded := make(map[string]bool)
	for _, term := range BuildExcludeIngredients(p) {
		excluded[term] = true
	}

	filtered := include[:0]
	for _, term := range include {
		if !excluded[term] {
			filtered = append(filtered, term)
		}
	}
	return filtered
}

func splitFreeText(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.ToLower(item)
	}
	return out
}

// dedupe removes duplicates preserving first-seen order so results stay
// deterministic for a given profile.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
