package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vedawell/backend/internal/nutrition"
	"github.com/vedawell/backend/internal/service"
)

type AssistantHandler struct {
	assistant     *service.Assistant
	intakeService *service.IntakeService
}

func NewAssistantHandler(assistant *service.Assistant, intakeService *service.IntakeService) *AssistantHandler {
	return &AssistantHandler{
		assistant:     assistant,
		intakeService: intakeService,
	}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/assistant/chat", h.Chat)
}

// Chat answers one message. The caller's latest assessment, when present,
// personalizes calorie estimates and recipe exclusions.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	var profile *nutrition.PatientProfile
	intake, err := h.intakeService.LatestIntake(c.Request.Context(), userID)
	if err == nil {
		p := service.ProfileFromIntake("", intake)
		profile = &p
	} else if !errors.Is(err, service.ErrIntakeNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	c.JSON(http.StatusOK, h.assistant.Respond(c.Request.Context(), req.Message, profile))
}
