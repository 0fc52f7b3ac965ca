package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vedawell/backend/internal/models"
	"github.com/vedawell/backend/internal/nutrition"
	"github.com/vedawell/backend/internal/recipeapi"
)

var (
	ErrChartNotFound = errors.New("diet chart not found")
	ErrInvalidEdit   = errors.New("invalid chart edit")
)

// chartCacheTTL controls how long a generated chart stays in Redis.
const chartCacheTTL = 24 * time.Hour

// DietChartMeal is one chosen recipe bound to a meal slot for one day.
type DietChartMeal struct {
	Slot           string           `json:"slot"`
	SlotLabel      string           `json:"slot_label"`
	Time           string           `json:"time"`
	Recipe         recipeapi.Recipe `json:"recipe"`
	TargetCalories float64          `json:"target_calories"`
	ActualCalories float64          `json:"actual_calories"`
}

// DietChartDay holds the meals selected for one day with aggregated totals.
// A day may have fewer than five meals when a slot's search found nothing.
type DietChartDay struct {
	Day           int             `json:"day"`
	Label         string          `json:"label"`
	Meals         []DietChartMeal `json:"meals"`
	TotalCalories int             `json:"total_calories"`
	TotalProtein  float64         `json:"total_protein"`
	TotalCarbs    float64         `json:"total_carbs"`
	TotalFat      float64         `json:"total_fat"`
}

// GeneratedDietChart is the full chart document returned to the caller and
// persisted as-is. It is never mutated after generation (edits produce a
// new document revision).
type GeneratedDietChart struct {
	PatientName        string                            `json:"patient_name"`
	Constitution       nutrition.ConstitutionResult      `json:"constitution"`
	LifeStageLabel     string                            `json:"life_stage_label"`
	Targets            nutrition.NutritionalTargets      `json:"targets"`
	Days               []DietChartDay                    `json:"days"`
	Recommendations    nutrition.ConstitutionPreferences `json:"recommendations"`
	MedicalNotes       []string                          `json:"medical_notes"`
	ExcludeIngredients []string                          `json:"exclude_ingredients"`
	GeneratedAt        time.Time                         `json:"generated_at"`
}

// DietChartService generates, stores and edits diet charts.
type DietChartService struct {
	db    *gorm.DB
	redis *redis.Client
	meals *MealSearch
	rng   *rand.Rand
}

// NewDietChartService wires the generator. redis may be nil, in which case
// charts live only in the database. rng drives recipe selection; a nil rng
// gets a time-seeded one.
func NewDietChartService(db *gorm.DB, redisClient *redis.Client, meals *MealSearch, rng *rand.Rand) *DietChartService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DietChartService{
		db:    db,
		redis: redisClient,
		meals: meals,
		rng:   rng,
	}
}

// GenerateDietChart builds a chart for numDays days. It never fails: search
// errors degrade to omitted meal slots. Profile-derived inputs are computed
// once; only the per-slot searches repeat.
func (s *DietChartService) GenerateDietChart(ctx context.Context, profile nutrition.PatientProfile, numDays int) *GeneratedDietChart {
	if numDays <= 0 {
		numDays = 7
	}

	constitution := nutrition.Classify(profile)
	targets := nutrition.GetNutritionalTargets(profile.LifeStage, profile.Trimester, profile.Breastfeeding, profile.MenopauseStage)
	prefs := nutrition.GetConstitutionPreferences(constitution.Primary)
	exclude := nutrition.BuildExcludeIngredients(profile)
	include := nutrition.BuildIncludeIngredients(profile)
	dietKey := nutrition.DietSearchKey(profile.DietPreference)
	dailyCalories := nutrition.DailyCalories(targets)
	slots := nutrition.MealSlots()

	days := make([]DietChartDay, 0, numDays)
	for d := 0; d < numDays; d++ {
		day := DietChartDay{
			Day:   d + 1,
			Label: nutrition.DayNames[d%len(nutrition.DayNames)],
		}

		var calories, protein, carbs, fat float64
		for _, slot := range slots {
			candidates := s.meals.FetchRecipesForMeal(ctx, slot, dailyCalories, dietKey, exclude, include, targets.FocusCategories)
			if len(candidates) == 0 {
				// Slot omitted; the day simply has fewer meals.
				continue
			}

			picked := candidates[s.rng.Intn(len(candidates))]
			day.Meals = append(day.Meals, DietChartMeal{
				Slot:           slot.ID,
				SlotLabel:      slot.Label,
				Time:           slot.Time,
				Recipe:         picked,
				TargetCalories: math.Round(dailyCalories * slot.CalorieFraction),
				ActualCalories: picked.Calories,
			})

			calories += picked.Calories
			protein += picked.Protein
			carbs += picked.Carbs
			fat += picked.Fat
		}

		day.TotalCalories = int(math.Round(calories))
		day.TotalProtein = round1(protein)
		day.TotalCarbs = round1(carbs)
		day.TotalFat = round1(fat)
		days = append(days, day)
	}

	return &GeneratedDietChart{
		PatientName:        profile.Name,
		Constitution:       constitution,
		LifeStageLabel:     lifeStageLabel(profile),
		Targets:            targets,
		Days:               days,
		Recommendations:    prefs,
		MedicalNotes:       targets.Notes,
		ExcludeIngredients: exclude,
		GeneratedAt:        time.Now().UTC(),
	}
}

// GenerateAndStore generates a chart and persists it for the user: a row in
// the database plus a Redis mirror for fast reads.
func (s *DietChartService) GenerateAndStore(ctx context.Context, userID uuid.UUID, profile nutrition.PatientProfile, numDays int) (*models.DietChart, error) {
	chart := s.GenerateDietChart(ctx, profile, numDays)

	document, err := json.Marshal(chart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart document: %w", err)
	}

	record := &models.DietChart{
		UserID:         userID,
		PatientName:    chart.PatientName,
		Constitution:   string(chart.Constitution.Primary),
		LifeStageLabel: chart.LifeStageLabel,
		NumDays:        len(chart.Days),
		Document:       models.JSONDocument(document),
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to store diet chart: %w", err)
	}

	s.cacheChart(ctx, record)
	return record, nil
}

// GetChart fetches a stored chart, preferring the Redis mirror.
func (s *DietChartService) GetChart(ctx context.Context, id uuid.UUID) (*models.DietChart, error) {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, chartKey(id)).Bytes()
		if err == nil {
			var chart models.DietChart
			if err := json.Unmarshal(data, &chart); err == nil {
				return &chart, nil
			}
		}
	}

	var chart models.DietChart
	if err := s.db.WithContext(ctx).First(&chart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChartNotFound
		}
		return nil, fmt.Errorf("failed to get diet chart: %w", err)
	}

	s.cacheChart(ctx, &chart)
	return &chart, nil
}

// ListCharts returns a user's charts, newest first, without documents.
func (s *DietChartService) ListCharts(ctx context.Context, userID uuid.UUID) ([]*models.DietChart, error) {
	var charts []*models.DietChart
	if err := s.db.WithContext(ctx).
		Select("id", "user_id", "created_at", "updated_at", "patient_name", "constitution", "life_stage_label", "num_days").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&charts).Error; err != nil {
		return nil, fmt.Errorf("failed to list diet charts: %w", err)
	}
	return charts, nil
}

// ChartEdit describes one meal-board operation on a stored chart. Days are
// 1-based; slots use the slot IDs from the meal structure table.
type ChartEdit struct {
	Action   string `json:"action" binding:"required"` // move, swap, remove
	FromDay  int    `json:"from_day"`
	FromSlot string `json:"from_slot"`
	ToDay    int    `json:"to_day"`
	ToSlot   string `json:"to_slot"`
}

// ApplyEdit mutates a stored chart document per the edit, recomputes the
// affected day totals, saves the revision and appends to the edit log.
func (s *DietChartService) ApplyEdit(ctx context.Context, chartID, userID uuid.UUID, edit ChartEdit) (*models.DietChart, error) {
	record, err := s.GetChart(ctx, chartID)
	if err != nil {
		return nil, err
	}

	var chart GeneratedDietChart
	if err := json.Unmarshal(record.Document, &chart); err != nil {
		return nil, fmt.Errorf("failed to decode chart document: %w", err)
	}

	if err := applyChartEdit(&chart, edit); err != nil {
		return nil, err
	}

	document, err := json.Marshal(chart)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart document: %w", err)
	}
	record.Document = models.JSONDocument(document)

	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("failed to save edited chart: %w", err)
	}

	logEntry := &models.DietChartEdit{
		ChartID:  chartID,
		UserID:   userID,
		Action:   edit.Action,
		FromDay:  edit.FromDay,
		FromSlot: edit.FromSlot,
		ToDay:    edit.ToDay,
		ToSlot:   edit.ToSlot,
	}
	if err := s.db.WithContext(ctx).Create(logEntry).Error; err != nil {
		return nil, fmt.Errorf("failed to record chart edit: %w", err)
	}

	s.cacheChart(ctx, record)
	return record, nil
}

// ListEdits returns a chart's edit log, oldest first.
func (s *DietChartService) ListEdits(ctx context.Context, chartID uuid.UUID) ([]*models.DietChartEdit, error) {
	var edits []*models.DietChartEdit
	if err := s.db.WithContext(ctx).
		Where("chart_id = ?", chartID).
		Order("created_at ASC").
		Find(&edits).Error; err != nil {
		return nil, fmt.Errorf("failed to list chart edits: %w", err)
	}
	return edits, nil
}

func (s *DietChartService) cacheChart(ctx context.Context, chart *models.DietChart) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(chart)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, chartKey(chart.ID), data, chartCacheTTL).Err(); err != nil {
		log.Printf("failed to cache diet chart %s: %v", chart.ID, err)
	}
}

func chartKey(id uuid.UUID) string {
	return fmt.Sprintf("dietchart:%s", id)
}

// applyChartEdit performs the board operation in place.
func applyChartEdit(chart *GeneratedDietChart, edit ChartEdit) error {
	fromDay := dayByNumber(chart, edit.FromDay)
	if fromDay == nil {
		return fmt.Errorf("%w: day %d out of range", ErrInvalidEdit, edit.FromDay)
	}
	fromIdx := mealIndex(fromDay, edit.FromSlot)
	if fromIdx < 0 {
		return fmt.Errorf("%w: no meal in day %d slot %s", ErrInvalidEdit, edit.FromDay, edit.FromSlot)
	}

	switch edit.Action {
	case "remove":
		fromDay.Meals = append(fromDay.Meals[:fromIdx], fromDay.Meals[fromIdx+1:]...)
		recomputeDayTotals(fromDay)
		return nil

	case "move", "swap":
		toDay := dayByNumber(chart, edit.ToDay)
		if toDay == nil {
			return fmt.Errorf("%w: day %d out of range", ErrInvalidEdit, edit.ToDay)
		}

		if edit.Action == "swap" {
			toIdx := mealIndex(toDay, edit.ToSlot)
			if toIdx < 0 {
				return fmt.Errorf("%w: no meal in day %d slot %s", ErrInvalidEdit, edit.ToDay, edit.ToSlot)
			}
			fromDay.Meals[fromIdx].Recipe, toDay.Meals[toIdx].Recipe =
				toDay.Meals[toIdx].Recipe, fromDay.Meals[fromIdx].Recipe
			fromDay.Meals[fromIdx].ActualCalories = fromDay.Meals[fromIdx].Recipe.Calories
			toDay.Meals[toIdx].ActualCalories = toDay.Meals[toIdx].Recipe.Calories
		} else {
			meal := fromDay.Meals[fromIdx]
			fromDay.Meals = append(fromDay.Meals[:fromIdx], fromDay.Meals[fromIdx+1:]...)

			meal.Slot = edit.ToSlot
			if slot := slotByID(edit.ToSlot); slot != nil {
				meal.SlotLabel = slot.Label
				meal.Time = slot.Time
			}
			// Resolve the target index only after the source entry is
			// removed: a same-day move shifts the slice.
			if toIdx := mealIndex(toDay, edit.ToSlot); toIdx >= 0 {
				toDay.Meals[toIdx] = meal
			} else {
				toDay.Meals = append(toDay.Meals, meal)
			}
		}

		recomputeDayTotals(fromDay)
		if toDay != fromDay {
			recomputeDayTotals(toDay)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidEdit, edit.Action)
	}
}

func dayByNumber(chart *GeneratedDietChart, day int) *DietChartDay {
	for i := range chart.Days {
		if chart.Days[i].Day == day {
			return &chart.Days[i]
		}
	}
	return nil
}

func mealIndex(day *DietChartDay, slotID string) int {
	for i, meal := range day.Meals {
		if meal.Slot == slotID {
			return i
		}
	}
	return -1
}

func slotByID(id string) *nutrition.MealSlot {
	for _, slot := range nutrition.MealSlots() {
		if slot.ID == id {
			return &slot
		}
	}
	return nil
}

func recomputeDayTotals(day *DietChartDay) {
	var calories, protein, carbs, fat float64
	for _, meal := range day.Meals {
		calories += meal.Recipe.Calories
		protein += meal.Recipe.Protein
		carbs += meal.Recipe.Carbs
		fat += meal.Recipe.Fat
	}
	day.TotalCalories = int(math.Round(calories))
	day.TotalProtein = round1(protein)
	day.TotalCarbs = round1(carbs)
	day.TotalFat = round1(fat)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// lifeStageLabel renders the stage plus its qualifier for display.
func lifeStageLabel(p nutrition.PatientProfile) string {
	switch p.LifeStage {
	case nutrition.LifeStagePregnancy:
		trimester := p.Trimester
		if trimester == "" {
			trimester = "first"
		}
		return fmt.Sprintf("Pregnancy (%s trimester)", trimester)
	case nutrition.LifeStagePostpartum:
		if p.Breastfeeding == "yes" {
			return "Postpartum (breastfeeding)"
		}
		return "Postpartum (recovery)"
	case nutrition.LifeStageMenopause:
		stage := p.MenopauseStage
		if stage == "" {
			stage = "peri"
		}
		return fmt.Sprintf("Menopause (%s)", stage)
	default:
		return "General wellness"
	}
}
