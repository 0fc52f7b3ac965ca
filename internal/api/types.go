package api

// RegisterRequest is the signup payload. Dietary preferences and allergies
// are optional comma-separated free text.
type RegisterRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=6"`
	Role               string `json:"role"`
	DietaryPreferences string `json:"dietary_preferences"`
	Allergies          string `json:"allergies"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// IntakeRequest is the health-assessment questionnaire payload.
type IntakeRequest struct {
	Age    int     `json:"age" binding:"required,min=1,max=120"`
	Gender string  `json:"gender" binding:"required"`
	Weight float64 `json:"weight_kg" binding:"required,gt=0"`
	Height float64 `json:"height_cm" binding:"required,gt=0"`

	LifeStage      string `json:"life_stage"`
	Trimester      string `json:"trimester"`
	Breastfeeding  string `json:"breastfeeding"`
	MenopauseStage string `json:"menopause_stage"`

	Allergies      []string `json:"allergies"`
	Avoidances     string   `json:"avoidances"`
	DietPreference string   `json:"diet_preference"`

	BodyFrame         string   `json:"body_frame"`
	SkinType          string   `json:"skin_type"`
	HairType          string   `json:"hair_type"`
	AppetitePattern   string   `json:"appetite_pattern"`
	ActivityLevel     string   `json:"activity_level"`
	WeatherPreference string   `json:"weather_preference"`
	PersonalityTraits []string `json:"personality_traits"`
	DigestionIssues   []string `json:"digestion_issues"`
	EnergyLevel       int      `json:"energy_level" binding:"min=0,max=10"`
	StressLevel       int      `json:"stress_level" binding:"min=0,max=10"`
}

type GenerateChartRequest struct {
	NumDays int `json:"num_days"`
}

type CreateConsultationRequest struct {
	Subject       string `json:"subject" binding:"required"`
	Message       string `json:"message"`
	PreferredTime string `json:"preferred_time"`
}

type UpdateConsultationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted declined completed"`
	Notes  string `json:"notes"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}
