package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vedawell/backend/internal/middleware"
	"github.com/vedawell/backend/internal/models"
	"github.com/vedawell/backend/internal/service"
)

type ConsultationHandler struct {
	consultationService *service.ConsultationService
}

func NewConsultationHandler(consultationService *service.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService}
}

func (h *ConsultationHandler) RegisterRoutes(router *gin.RouterGroup) {
	consultations := router.Group("/consultations")
	{
		consultations.POST("", h.Create)
		consultations.GET("", h.ListMine)

		doctor := consultations.Group("", middleware.RequireRole("doctor"))
		{
			doctor.GET("/open", h.ListOpen)
			doctor.PUT("/:id/status", h.UpdateStatus)
		}
	}
}

func (h *ConsultationHandler) Create(c *gin.Context) {
	var req CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	created, err := h.consultationService.CreateRequest(c.Request.Context(), &models.ConsultationRequest{
		PatientID:     userID,
		Subject:       req.Subject,
		Message:       req.Message,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create consultation request"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ConsultationHandler) ListMine(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	requests, err := h.consultationService.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list consultation requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *ConsultationHandler) ListOpen(c *gin.Context) {
	requests, err := h.consultationService.ListOpen(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list consultation requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *ConsultationHandler) UpdateStatus(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid consultation id"})
		return
	}

	var req UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctorID := c.MustGet("user_id").(uuid.UUID)

	updated, err := h.consultationService.UpdateStatus(c.Request.Context(), requestID, doctorID, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrConsultationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "consultation request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update consultation request"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
