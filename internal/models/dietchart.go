package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONDocument stores an arbitrary JSON document in a single column.
type JSONDocument json.RawMessage

// Value implements the driver.Valuer interface.
func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "{}", nil
	}
	return string(d), nil
}

// Scan implements the sql.Scanner interface.
func (d *JSONDocument) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*d = JSONDocument(append([]byte(nil), v...))
	case string:
		*d = JSONDocument(v)
	case nil:
		*d = nil
	}
	return nil
}

// MarshalJSON renders the stored document inline rather than base64.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores the raw document bytes.
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	*d = JSONDocument(append([]byte(nil), data...))
	return nil
}

// DietChart is a generated chart persisted for later viewing and editing.
// Document holds the full GeneratedDietChart JSON; the scalar columns exist
// for listing without decoding the document.
type DietChart struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PatientName    string       `gorm:"size:255" json:"patient_name"`
	Constitution   string       `gorm:"size:10" json:"constitution"`
	LifeStageLabel string       `gorm:"size:60" json:"life_stage_label"`
	NumDays        int          `json:"num_days"`
	Document       JSONDocument `gorm:"type:jsonb;not null" json:"document"`
}

func (c *DietChart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DietChartEdit is one entry in a chart's append-only edit log, written by
// the drag-and-drop meal board.
type DietChartEdit struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ChartID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"chart_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Action   string `gorm:"size:20;not null" json:"action"` // move, swap, remove
	FromDay  int    `json:"from_day"`
	FromSlot string `gorm:"size:20" json:"from_slot"`
	ToDay    int    `json:"to_day"`
	ToSlot   string `gorm:"size:20" json:"to_slot"`
}

func (e *DietChartEdit) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
