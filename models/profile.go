package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/causewayapp/causeway/energy"
)

// Profile is the per-user gamification state. The identity itself lives at
// the external provider; the profile id mirrors its subject id.
type Profile struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	Username         string     `gorm:"size:64" json:"username"`
	Points           int        `gorm:"default:0" json:"points"`
	Energy           int        `gorm:"default:10" json:"energy"`
	LastEnergyReset  time.Time  `json:"last_energy_reset"`
	CurrentStreak    int        `gorm:"default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"default:0" json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BeforeCreate seeds identity and energy state for fresh profiles.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Energy == 0 && p.LastEnergyReset.IsZero() {
		p.Energy = energy.MaxEnergy
	}
	if p.LastEnergyReset.IsZero() {
		p.LastEnergyReset = time.Now()
	}
	return nil
}
