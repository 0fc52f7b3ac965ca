package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vedawell/backend/internal/models"
	"github.com/vedawell/backend/internal/service"
)

type IntakeHandler struct {
	intakeService *service.IntakeService
}

func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

func (h *IntakeHandler) RegisterRoutes(router *gin.RouterGroup) {
	intake := router.Group("/intake")
	{
		intake.POST("", h.Create)
		intake.GET("/latest", h.Latest)
		intake.GET("/history", h.History)
	}
}

// Create stores a new assessment. Earlier intakes are kept for history; the
// newest one drives chart generation.
func (h *IntakeHandler) Create(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	intake := &models.PatientIntake{
		UserID:            userID,
		Age:               req.Age,
		Gender:            req.Gender,
		Weight:            req.Weight,
		Height:            req.Height,
		LifeStage:         req.LifeStage,
		Trimester:         req.Trimester,
		Breastfeeding:     req.Breastfeeding,
		MenopauseStage:    req.MenopauseStage,
		Allergies:         req.Allergies,
		Avoidances:        req.Avoidances,
		DietPreference:    req.DietPreference,
		BodyFrame:         req.BodyFrame,
		SkinType:          req.SkinType,
		HairType:          req.HairType,
		AppetitePattern:   req.AppetitePattern,
		ActivityLevel:     req.ActivityLevel,
		WeatherPreference: req.WeatherPreference,
		PersonalityTraits: req.PersonalityTraits,
		DigestionIssues:   req.DigestionIssues,
		EnergyLevel:       req.EnergyLevel,
		StressLevel:       req.StressLevel,
	}
	if intake.LifeStage == "" {
		intake.LifeStage = "not_applicable"
	}

	saved, err := h.intakeService.SaveIntake(c.Request.Context(), intake)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save assessment"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (h *IntakeHandler) Latest(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	intake, err := h.intakeService.LatestIntake(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrIntakeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no assessment on file"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	c.JSON(http.StatusOK, intake)
}

func (h *IntakeHandler) History(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	intakes, err := h.intakeService.ListIntakes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assessments"})
		return
	}

	c.JSON(http.StatusOK, intakes)
}
