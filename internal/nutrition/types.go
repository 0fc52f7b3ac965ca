package nutrition

// LifeStage identifies the patient's reproductive/hormonal phase. It drives
// which row of the guideline table applies.
type LifeStage string

const (
	LifeStageNotApplicable LifeStage = "not_applicable"
	LifeStagePregnancy     LifeStage = "pregnancy"
	LifeStagePostpartum    LifeStage = "postpartum"
	LifeStageMenopause     LifeStage = "menopause"
)

// Constitution is one of the three classification axes.
type Constitution string

const (
	Vata  Constitution = "vata"
	Pitta Constitution = "pitta"
	Kapha Constitution = "kapha"
)

// PatientProfile is the immutable intake record a chart generation request
// starts from. It is created once per request and never mutated.
type PatientProfile struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Gender string  `json:"gender"`
	Weight float64 `json:"weight_kg"`
	Height float64 `json:"height_cm"`

	LifeStage      LifeStage `json:"life_stage"`
	Trimester      string    `json:"trimester,omitempty"`       // first, second, third
	Breastfeeding  string    `json:"breastfeeding,omitempty"`   // yes, no
	MenopauseStage string    `json:"menopause_stage,omitempty"` // peri, post

	Allergies      []string `json:"allergies"`
	Avoidances     string   `json:"avoidances"` // free text, comma separated
	DietPreference string   `json:"diet_preference"`

	// Constitutional assessment attributes.
	BodyFrame         string   `json:"body_frame"`
	SkinType          string   `json:"skin_type"`
	HairType          string   `json:"hair_type"`
	AppetitePattern   string   `json:"appetite_pattern"`
	ActivityLevel     string   `json:"activity_level"`
	WeatherPreference string   `json:"weather_preference"`
	PersonalityTraits []string `json:"personality_traits"`
	DigestionIssues   []string `json:"digestion_issues"`
	EnergyLevel       int      `json:"energy_level"` // 1-10
	StressLevel       int      `json:"stress_level"` // 1-10
}

// NutritionalTargets holds the medically-grounded targets for one life stage.
type NutritionalTargets struct {
	CalorieMin   int     `json:"calorie_min"`
	CalorieMax   int     `json:"calorie_max"`
	CalorieLabel string  `json:"calorie_label"`
	ProteinMin   float64 `json:"protein_min_g"`
	ProteinMax   float64 `json:"protein_max_g,omitempty"`
	IronMin      float64 `json:"iron_min_mg"`
	IronMax      float64 `json:"iron_max_mg,omitempty"`
	CalciumMin   float64 `json:"calcium_min_mg"`
	FolateMin    float64 `json:"folate_min_mcg"`
	VitaminDMin  float64 `json:"vitamin_d_min_iu"`
	FiberMin     float64 `json:"fiber_min_g"`
	Omega3Min    float64 `json:"omega3_min_g"`

	Notes           []string `json:"notes"`
	AvoidList       []string `json:"avoid_list"`
	FocusList       []string `json:"focus_list"`
	FocusCategories []string `json:"focus_categories"`
}

// ConstitutionScores holds the accumulated rule scores per axis.
type ConstitutionScores struct {
	Vata  int `json:"vata"`
	Pitta int `json:"pitta"`
	Kapha int `json:"kapha"`
}

// ConstitutionResult is the classifier output.
type ConstitutionResult struct {
	Primary Constitution       `json:"primary"`
	Scores  ConstitutionScores `json:"scores"`
}

// ConstitutionPreferences captures the dietary guidance attached to one
// constitution in the static preference table.
type ConstitutionPreferences struct {
	Description     string   `json:"description"`
	FavorableTypes  []string `json:"favorable_types"`
	FavorableItems  []string `json:"favorable_items"`
	AvoidItems      []string `json:"avoid_items"`
	PreferredSpices []string `json:"preferred_spices"`
	CookingMethods  []string `json:"cooking_methods"`
}

// MealSlot is one of the five fixed daily eating occasions.
type MealSlot struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Time            string  `json:"time"`
	CalorieFraction float64 `json:"calorie_fraction"`
}
