package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vedawell/backend/internal/models"
	"github.com/vedawell/backend/internal/nutrition"
)

var ErrIntakeNotFound = errors.New("patient intake not found")

// IntakeService manages stored constitutional-assessment questionnaires.
type IntakeService struct {
	db *gorm.DB
}

func NewIntakeService(db *gorm.DB) *IntakeService {
	return &IntakeService{db: db}
}

// SaveIntake stores a new intake record for a user. Intakes are append-only;
// the latest one wins for chart generation.
func (s *IntakeService) SaveIntake(ctx context.Context, intake *models.PatientIntake) (*models.PatientIntake, error) {
	if err := s.db.WithContext(ctx).Create(intake).Error; err != nil {
		return nil, fmt.Errorf("failed to save intake: %w", err)
	}
	return intake, nil
}

// LatestIntake returns the most recent intake for a user.
func (s *IntakeService) LatestIntake(ctx context.Context, userID uuid.UUID) (*models.PatientIntake, error) {
	var intake models.PatientIntake
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&intake).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntakeNotFound
		}
		return nil, fmt.Errorf("failed to load intake: %w", err)
	}
	return &intake, nil
}

// ListIntakes returns all intakes for a user, newest first.
func (s *IntakeService) ListIntakes(ctx context.Context, userID uuid.UUID) ([]*models.PatientIntake, error) {
	var intakes []*models.PatientIntake
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&intakes).Error; err != nil {
		return nil, fmt.Errorf("failed to list intakes: %w", err)
	}
	return intakes, nil
}

// ProfileFromIntake converts a stored intake row into the generator's input
// structure.
func ProfileFromIntake(name string, intake *models.PatientIntake) nutrition.PatientProfile {
	return nutrition.PatientProfile{
		Name:              name,
		Age:               intake.Age,
		Gender:            intake.Gender,
		Weight:            intake.Weight,
		Height:            intake.Height,
		LifeStage:         nutrition.LifeStage(intake.LifeStage),
		Trimester:         intake.Trimester,
		Breastfeeding:     intake.Breastfeeding,
		MenopauseStage:    intake.MenopauseStage,
		Allergies:         intake.Allergies,
		Avoidances:        intake.Avoidances,
		DietPreference:    intake.DietPreference,
		BodyFrame:         intake.BodyFrame,
		SkinType:          intake.SkinType,
		HairType:          intake.HairType,
		AppetitePattern:   intake.AppetitePattern,
		ActivityLevel:     intake.ActivityLevel,
		WeatherPreference: intake.WeatherPreference,
		PersonalityTraits: intake.PersonalityTraits,
		DigestionIssues:   intake.DigestionIssues,
		EnergyLevel:       intake.EnergyLevel,
		StressLevel:       intake.StressLevel,
	}
}
