package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vedawell/backend/internal/models"
	"github.com/vedawell/backend/internal/service"
)

type DietChartHandler struct {
	chartService  *service.DietChartService
	intakeService *service.IntakeService
	db            *gorm.DB
}

func NewDietChartHandler(chartService *service.DietChartService, intakeService *service.IntakeService, db *gorm.DB) *DietChartHandler {
	return &DietChartHandler{
		chartService:  chartService,
		intakeService: intakeService,
		db:            db,
	}
}

func (h *DietChartHandler) RegisterRoutes(router *gin.RouterGroup) {
	charts := router.Group("/charts")
	{
		charts.POST("/generate", h.Generate)
		charts.GET("", h.List)
		charts.GET("/:id", h.Get)
		charts.POST("/:id/edits", h.Edit)
		charts.GET("/:id/edits", h.ListEdits)
	}
}

// Generate builds a chart from the caller's most recent assessment.
func (h *DietChartHandler) Generate(c *gin.Context) {
	var req GenerateChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	intake, err := h.intakeService.LatestIntake(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrIntakeNotFound) {
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "complete a health assessment before generating a chart"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	profile := service.ProfileFromIntake(user.Name, intake)
	record, err := h.chartService.GenerateAndStore(c.Request.Context(), userID, profile, req.NumDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate diet chart"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *DietChartHandler) Get(c *gin.Context) {
	chart, ok := h.ownedChart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (h *DietChartHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	charts, err := h.chartService.ListCharts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list diet charts"})
		return
	}

	c.JSON(http.StatusOK, charts)
}

func (h *DietChartHandler) Edit(c *gin.Context) {
	chart, ok := h.ownedChart(c)
	if !ok {
		return
	}

	var edit service.ChartEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	updated, err := h.chartService.ApplyEdit(c.Request.Context(), chart.ID, userID, edit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEdit) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply edit"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *DietChartHandler) ListEdits(c *gin.Context) {
	chart, ok := h.ownedChart(c)
	if !ok {
		return
	}

	edits, err := h.chartService.ListEdits(c.Request.Context(), chart.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list edits"})
		return
	}

	c.JSON(http.StatusOK, edits)
}

// ownedChart loads the chart from the path and enforces that the caller
// owns it, or is a doctor. Writes the error response itself on failure.
func (h *DietChartHandler) ownedChart(c *gin.Context) (*models.DietChart, bool) {
	chartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chart id"})
		return nil, false
	}

	chart, err := h.chartService.GetChart(c.Request.Context(), chartID)
	if err != nil {
		if errors.Is(err, service.ErrChartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diet chart not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load diet chart"})
		return nil, false
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if chart.UserID != userID && c.GetString("role") != "doctor" {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your diet chart"})
		return nil, false
	}

	return chart, true
}
