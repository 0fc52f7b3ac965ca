package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsultationRequest is a patient's request for a doctor consultation.
type ConsultationRequest struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PatientID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"patient_id"`
	DoctorID  *uuid.UUID `gorm:"type:varchar(36);index" json:"doctor_id,omitempty"`

	Subject       string `gorm:"size:255;not null" json:"subject"`
	Message       string `gorm:"type:text" json:"message"`
	PreferredTime string `gorm:"size:100" json:"preferred_time"`
	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"` // pending, accepted, declined, completed
	DoctorNotes   string `gorm:"type:text" json:"doctor_notes"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (r *ConsultationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
