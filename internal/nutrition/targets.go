package nutrition

// Adult baseline the other life stages adjust from.
const (
	baseCalorieMin = 1800
	baseCalorieMax = 2200

	pregnancyCalorieMin = 1800
	pregnancyCalorieMax = 2400
)

// trimesterCalorieOffset is the extra daily energy demand per trimester.
var trimesterCalorieOffset = map[string]int{
	"first":  0,
	"second": 340,
	"third":  450,
}

var pregnancyAvoidList = []string{
	"alcohol",
	"raw fish",
	"raw egg",
	"liver",
	"unpasteurized dairy",
	"swordfish",
	"king mackerel",
	"tilefish",
	"shark",
	"raw sprouts",
	"deli meat",
}

var pregnancyFocusList = []string{
	"spinach", "lentils", "fortified cereal", "orange", "broccoli",
	"yogurt", "eggs", "salmon", "beans", "sweet potato",
}

var pregnancyFocusCategories = []string{"leafy greens", "legumes", "dairy"}

var breastfeedingAvoidList = []string{
	"excess caffeine",
	"swordfish",
	"king mackerel",
	"peppermint",
	"sage",
}

var postpartumFocusList = []string{
	"oats", "fenugreek", "almonds", "ghee", "dates",
	"spinach", "lentils", "sesame seeds",
}

var menopauseAvoidList = []string{
	"excess sugar",
	"excess salt",
	"excess caffeine",
	"alcohol",
	"processed meat",
}

var menopauseFocusList = []string{
	"soybeans", "tofu", "flaxseed", "sesame seeds", "chickpeas",
	"lentils", "broccoli", "kale", "salmon", "almonds",
}

// GetNutritionalTargets returns the guideline targets for a life stage.
// Unknown stages fall through to the general adult baseline; the function
// never fails.
func GetNutritionalTargets(stage LifeStage, trimester, breastfeeding, menopauseStage string) NutritionalTargets {
	switch stage {
	case LifeStagePregnancy:
		offset := trimesterCalorieOffset[trimester]
		return NutritionalTargets{
			CalorieMin:   pregnancyCalorieMin + offset,
			CalorieMax:   pregnancyCalorieMax + offset,
			CalorieLabel: "pregnancy (" + nonEmpty(trimester, "first") + " trimester)",
			ProteinMin:   71,
			IronMin:      27,
			CalciumMin:   1000,
			FolateMin:    600,
			VitaminDMin:  600,
			FiberMin:     28,
			Omega3Min:    1.4,
			Notes: []string{
				"Eat small frequent meals to manage nausea and reflux.",
				"Stay hydrated; aim for 8-12 cups of fluids daily.",
			},
			AvoidList:       pregnancyAvoidList,
			FocusList:       pregnancyFocusList,
			FocusCategories: pregnancyFocusCategories,
		}

	case LifeStagePostpartum:
		offset := 200
		label := "postpartum (recovery)"
		avoid := []string{"alcohol"}
		if breastfeeding == "yes" {
			offset = 500
			label = "postpartum (breastfeeding)"
			avoid = append(avoid, breastfeedingAvoidList...)
		}
		return NutritionalTargets{
			CalorieMin:   baseCalorieMin + offset,
			CalorieMax:   pregnancyCalorieMax + offset,
			CalorieLabel: label,
			ProteinMin:   65,
			IronMin:      9,
			IronMax:      18,
			CalciumMin:   1000,
			FolateMin:    500,
			VitaminDMin:  600,
			FiberMin:     28,
			Omega3Min:    1.3,
			Notes: []string{
				"Prioritize iron-replenishing foods during recovery.",
				"Warm, easily digestible meals support postpartum healing.",
			},
			AvoidList:       avoid,
			FocusList:       postpartumFocusList,
			FocusCategories: []string{"whole grains", "galactagogues", "leafy greens"},
		}

	case LifeStageMenopause:
		return NutritionalTargets{
			CalorieMin:   1600,
			CalorieMax:   2000,
			CalorieLabel: "menopause (" + nonEmpty(menopauseStage, "peri") + ")",
			ProteinMin:   60,
			IronMin:      8,
			CalciumMin:   1200,
			FolateMin:    400,
			VitaminDMin:  800,
			FiberMin:     25,
			Omega3Min:    1.1,
			Notes: []string{
				"Phytoestrogen-rich foods may ease vasomotor symptoms.",
				"Calcium and vitamin D protect against bone density loss.",
			},
			AvoidList:       menopauseAvoidList,
			FocusList:       menopauseFocusList,
			FocusCategories: []string{"soy", "legumes", "leafy greens"},
		}

	default:
		return NutritionalTargets{
			CalorieMin:   baseCalorieMin,
			CalorieMax:   baseCalorieMax,
			CalorieLabel: "general adult",
			ProteinMin:   46,
			ProteinMax:   56,
			IronMin:      18,
			CalciumMin:   1000,
			FolateMin:    400,
			VitaminDMin:  600,
			FiberMin:     25,
			Omega3Min:    1.1,
			Notes:        []string{"Balanced diet across all food groups."},
		}
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
