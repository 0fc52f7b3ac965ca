package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vedawell/backend/internal/models"
)

var ErrConsultationNotFound = errors.New("consultation request not found")

// ConsultationService handles patient consultation requests.
type ConsultationService struct {
	db *gorm.DB
}

func NewConsultationService(db *gorm.DB) *ConsultationService {
	return &ConsultationService{db: db}
}

// CreateRequest stores a new consultation request from a patient.
func (s *ConsultationService) CreateRequest(ctx context.Context, req *models.ConsultationRequest) (*models.ConsultationRequest, error) {
	if req.Status == "" {
		req.Status = "pending"
	}
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, fmt.Errorf("failed to create consultation request: %w", err)
	}
	return req, nil
}

// GetRequest fetches one consultation request.
func (s *ConsultationService) GetRequest(ctx context.Context, id uuid.UUID) (*models.ConsultationRequest, error) {
	var req models.ConsultationRequest
	if err := s.db.WithContext(ctx).Preload("Patient").First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to get consultation request: %w", err)
	}
	return &req, nil
}

// ListForPatient returns a patient's own requests, newest first.
func (s *ConsultationService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*models.ConsultationRequest, error) {
	var requests []*models.ConsultationRequest
	if err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list consultation requests: %w", err)
	}
	return requests, nil
}

// ListOpen returns requests a doctor can pick up, oldest first, optionally
// filtered by status.
func (s *ConsultationService) ListOpen(ctx context.Context, status string) ([]*models.ConsultationRequest, error) {
	query := s.db.WithContext(ctx).Preload("Patient")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []*models.ConsultationRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list consultation requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus lets a doctor accept, decline or complete a request.
func (s *ConsultationService) UpdateStatus(ctx context.Context, id, doctorID uuid.UUID, status, notes string) (*models.ConsultationRequest, error) {
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Status = status
	req.DoctorID = &doctorID
	if notes != "" {
		req.DoctorNotes = notes
	}

	if err := s.db.WithContext(ctx).Save(req).Error; err != nil {
		return nil, fmt.Errorf("failed to update consultation request: %w", err)
	}
	return req, nil
}
