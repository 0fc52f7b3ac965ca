package nutrition

import "strings"

// axisPrecedence resolves score ties: the first axis in this order with the
// maximum score wins. Vata comes first to match the classifier's default
// result for an all-zero profile.
var axisPrecedence = []Constitution{Vata, Pitta, Kapha}

// scoringRule adds fixed points to one or two axes when its condition
// matches a profile attribute. Rules are independent and additive.
type scoringRule struct {
	matches func(p PatientProfile) bool
	vata    int
	pitta   int
	kapha   int
}

func attrIs(get func(PatientProfile) string, values ...string) func(PatientProfile) bool {
	return func(p PatientProfile) bool {
		v := strings.ToLower(strings.TrimSpace(get(p)))
		for _, want := range values {
			if v == want {
				return true
			}
		}
		return false
	}
}

func listHas(get func(PatientProfile) []string, values ...string) func(PatientProfile) bool {
	return func(p PatientProfile) bool {
		for _, item := range get(p) {
			item = strings.ToLower(strings.TrimSpace(item))
			for _, want := range values {
				if item == want {
					return true
				}
			}
		}
		return false
	}
}

var scoringRules = []scoringRule{
	// Body frame
	{matches: attrIs(func(p PatientProfile) string { return p.BodyFrame }, "thin", "light"), vata: 3},
	{matches: attrIs(func(p PatientProfile) string { return p.BodyFrame }, "medium", "athletic"), pitta: 3},
	{matches: attrIs(func(p PatientProfile) string { return p.BodyFrame }, "large", "sturdy", "heavy"), kapha: 3},

	// Skin type
	{matches: attrIs(func(p PatientProfile) string { return p.SkinType }, "dry", "rough"), vata: 2},
	{matches: attrIs(func(p PatientProfile) string { return p.SkinType }, "oily", "sensitive"), pitta: 2},
	{matches: attrIs(func(p PatientProfile) string { return p.SkinType }, "thick", "smooth", "moist"), kapha: 2},

	// Hair type
	{matches: attrIs(func(p PatientProfile) string { return p.HairType }, "dry", "frizzy"), vata: 2},
	{matches: attrIs(func(p PatientProfile) string { return p.HairType }, "fine", "thinning"), pitta: 2},
	{matches: attrIs(func(p PatientProfile) string { return p.HairType }, "thick", "lustrous"), kapha: 2},

	// Appetite pattern
	{matches: attrIs(func(p PatientProfile) string { return p.AppetitePattern }, "variable", "irregular"), vata: 2},
	{matches: attrIs(func(p PatientProfile) string { return p.AppetitePattern }, "strong", "sharp"), pitta: 2},
	{matches: attrIs(func(p PatientProfile) string { return p.AppetitePattern }, "slow", "steady"), kapha: 2},

	// Activity level
	{matches: attrIs(func(p PatientProfile) string { return p.ActivityLevel }, "very_active", "restless"), vata: 1},
	{matches: attrIs(func(p PatientProfile) string { return p.ActivityLevel }, "moderate"), pitta: 1},
	{matches: attrIs(func(p PatientProfile) string { return p.ActivityLevel }, "sedentary", "low"), kapha: 1},

	// Weather preference: cold-intolerant leans vata, heat-intolerant pitta.
	{matches: attrIs(func(p PatientProfile) string { return p.WeatherPreference }, "warm", "hot"), vata: 1},
	{matches: attrIs(func(p PatientProfile) string { return p.WeatherPreference }, "cool", "cold"), pitta: 1},
	{matches: attrIs(func(p PatientProfile) string { return p.WeatherPreference }, "dry"), kapha: 1},

	// Personality traits
	{matches: listHas(func(p PatientProfile) []string { return p.PersonalityTraits }, "anxious", "creative", "talkative"), vata: 2},
	{matches: listHas(func(p PatientProfile) []string { return p.PersonalityTraits }, "ambitious", "intense", "irritable"), pitta: 2},
	{matches: listHas(func(p PatientProfile) []string { return p.PersonalityTraits }, "calm", "loyal", "methodical"), kapha: 2},

	// Digestion issues
	{matches: listHas(func(p PatientProfile) []string { return p.DigestionIssues }, "bloating", "gas", "constipation"), vata: 2},
	{matches: listHas(func(p PatientProfile) []string { return p.DigestionIssues }, "acidity", "heartburn", "loose stools"), pitta: 2},
	{matches: listHas(func(p PatientProfile) []string { return p.DigestionIssues }, "sluggish", "heaviness", "slow digestion"), kapha: 2},

	// Numeric levels: bursty high energy with high stress reads vata,
	// steady high energy pitta, low energy kapha.
	{matches: func(p PatientProfile) bool { return p.EnergyLevel >= 7 && p.StressLevel >= 7 }, vata: 1},
	{matches: func(p PatientProfile) bool { return p.EnergyLevel >= 7 && p.StressLevel < 7 }, pitta: 1},
	{matches: func(p PatientProfile) bool { return p.EnergyLevel > 0 && p.EnergyLevel <= 3 }, kapha: 1},
	{matches: func(p PatientProfile) bool { return p.StressLevel >= 8 }, vata: 1, pitta: 1},
}

// Classify scores a profile against the rule table and returns the dominant
// constitution. Every profile classifies: an all-zero profile resolves to
// the precedence winner (vata). Ties always resolve by axisPrecedence.
func Classify(p PatientProfile) ConstitutionResult {
	var scores ConstitutionScores
	for _, rule := range scoringRules {
		if rule.matches(p) {
			scores.Vata += rule.vata
			scores.Pitta += rule.pitta
			scores.Kapha += rule.kapha
		}
	}

	byAxis := map[Constitution]int{
		Vata:  scores.Vata,
		Pitta: scores.Pitta,
		Kapha: scores.Kapha,
	}

	primary := axisPrecedence[0]
	best := byAxis[primary]
	for _, axis := range axisPrecedence[1:] {
		if byAxis[axis] > best {
			primary = axis
			best = byAxis[axis]
		}
	}

	return ConstitutionResult{Primary: primary, Scores: scores}
}

// constitutionPreferences is the static dietary guidance per constitution.
var constitutionPreferences = map[Constitution]ConstitutionPreferences{
	Vata: {
		Description:     "Benefits from warm, moist, grounding foods taken at regular times.",
		FavorableTypes:  []string{"soup", "stew", "porridge", "curry"},
		FavorableItems:  []string{"oats", "rice", "ghee", "sweet potato", "dates", "almonds", "warm milk", "ginger"},
		AvoidItems:      []string{"raw salad", "crackers", "popcorn", "cold drinks", "dried fruit"},
		PreferredSpices: []string{"ginger", "cinnamon", "cardamom", "cumin"},
		CookingMethods:  []string{"steaming", "stewing", "slow cooking"},
	},
	Pitta: {
		Description:     "Benefits from cooling, mildly spiced foods and regular meals.",
		FavorableTypes:  []string{"salad", "smoothie", "rice bowl", "steamed vegetables"},
		FavorableItems:  []string{"cucumber", "coconut", "mint", "cilantro", "basmati rice", "melon", "leafy greens", "yogurt"},
		AvoidItems:      []string{"chili", "fried food", "vinegar", "sour fruit", "red meat"},
		PreferredSpices: []string{"coriander", "fennel", "mint", "turmeric"},
		CookingMethods:  []string{"steaming", "boiling", "raw preparation"},
	},
	Kapha: {
		Description:     "Benefits from light, warm, well-spiced foods and lighter evening meals.",
		FavorableTypes:  []string{"stir-fry", "grilled vegetables", "broth", "legume dishes"},
		FavorableItems:  []string{"barley", "millet", "broccoli", "bell peppers", "apples", "honey", "legumes", "leafy greens"},
		AvoidItems:      []string{"fried food", "cheese", "cream", "excess sweets", "heavy desserts"},
		PreferredSpices: []string{"black pepper", "ginger", "turmeric", "mustard seed"},
		CookingMethods:  []string{"grilling", "roasting", "stir-frying"},
	},
}

// GetConstitutionPreferences returns the static preference entry for a
// constitution. Unknown values map to the vata entry so callers always get
// usable guidance.
func GetConstitutionPreferences(c Constitution) ConstitutionPreferences {
	if prefs, ok := constitutionPreferences[c]; ok {
		return prefs
	}
	return constitutionPreferences[Vata]
}
