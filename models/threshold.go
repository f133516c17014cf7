package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Threshold is a cause card with a collective numeric goal. current_count
// only ever moves up, via the atomic increment on commit; it may pass the
// target and the threshold stays active until explicitly deactivated.
type Threshold struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Category     string    `gorm:"size:32;not null" json:"category"`
	TargetCount  int       `gorm:"not null" json:"target_count"`
	CurrentCount int       `gorm:"not null;default:0" json:"current_count"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (t *Threshold) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
