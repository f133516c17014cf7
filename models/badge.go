package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Badge requirement types evaluated after a commitment.
const (
	BadgeRequirementCommitments = "commitments"
	BadgeRequirementPoints      = "points"
	BadgeRequirementStreak      = "streak"
)

// Badge is a catalog entry describing an achievement and its reward.
type Badge struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Name             string    `gorm:"size:64;not null" json:"name"`
	Description      string    `gorm:"size:255" json:"description"`
	Icon             string    `gorm:"size:64" json:"icon"`
	RequirementType  string    `gorm:"size:32;not null" json:"requirement_type"`
	RequirementValue int       `gorm:"not null" json:"requirement_value"`
	PointsReward     int       `gorm:"default:0" json:"points_reward"`
	CreatedAt        time.Time `json:"created_at"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// UserBadge joins a profile to an earned badge. Written only by the badge
// evaluation inside the commit side effects, never by request handlers.
type UserBadge struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	UserID   string    `gorm:"size:36;index:idx_user_badge,unique;not null" json:"user_id"`
	BadgeID  string    `gorm:"size:36;index:idx_user_badge,unique;not null" json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}

func (ub *UserBadge) BeforeCreate(tx *gorm.DB) error {
	if ub.ID == "" {
		ub.ID = uuid.NewString()
	}
	if ub.EarnedAt.IsZero() {
		ub.EarnedAt = time.Now()
	}
	return nil
}
