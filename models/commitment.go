package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Commitment records a user pledging support to a threshold. Rows are
// immutable once written.
type Commitment struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;index;not null" json:"user_id"`
	ThresholdID  string    `gorm:"size:36;index;not null" json:"threshold_id"`
	PointsEarned int       `gorm:"not null" json:"points_earned"`
	CommittedAt  time.Time `json:"committed_at"`
}

func (c *Commitment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CommittedAt.IsZero() {
		c.CommittedAt = time.Now()
	}
	return nil
}
