package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONStringArray stores a string slice in a JSON column. Works on both
// postgres (jsonb) and sqlite (text).
type JSONStringArray []string

// Value implements the driver.Valuer interface.
func (a JSONStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface.
func (a *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// PatientIntake is a stored constitutional-assessment questionnaire. The
// chart generator consumes the most recent intake for a patient.
type PatientIntake struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Age    int     `json:"age"`
	Gender string  `gorm:"size:20" json:"gender"`
	Weight float64 `json:"weight_kg"`
	Height float64 `json:"height_cm"`

	LifeStage      string `gorm:"size:30;not null;default:'not_applicable'" json:"life_stage"`
	Trimester      string `gorm:"size:10" json:"trimester"`
	Breastfeeding  string `gorm:"size:5" json:"breastfeeding"`
	MenopauseStage string `gorm:"size:10" json:"menopause_stage"`

	Allergies      JSONStringArray `gorm:"type:jsonb" json:"allergies"`
	Avoidances     string          `gorm:"type:text" json:"avoidances"`
	DietPreference string          `gorm:"size:30" json:"diet_preference"`

	BodyFrame         string          `gorm:"size:20" json:"body_frame"`
	SkinType          string          `gorm:"size:20" json:"skin_type"`
	HairType          string          `gorm:"size:20" json:"hair_type"`
	AppetitePattern   string          `gorm:"size:20" json:"appetite_pattern"`
	ActivityLevel     string          `gorm:"size:20" json:"activity_level"`
	WeatherPreference string          `gorm:"size:20" json:"weather_preference"`
	PersonalityTraits JSONStringArray `gorm:"type:jsonb" json:"personality_traits"`
	DigestionIssues   JSONStringArray `gorm:"type:jsonb" json:"digestion_issues"`
	EnergyLevel       int             `json:"energy_level"`
	StressLevel       int             `json:"stress_level"`
}

func (i *PatientIntake) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
