package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/causewayapp/causeway/energy"
	"github.com/causewayapp/causeway/models"
	"github.com/causewayapp/causeway/services"
)

// refreshEnergy applies the refill rules to a locked profile row and
// advances the anchor so credited hours are not granted twice. Midnight
// reset re-anchors to now.
func refreshEnergy(p *models.Profile, now time.Time) {
	if !sameDay(p.LastEnergyReset, now) {
		p.Energy = energy.MaxEnergy
		p.LastEnergyReset = now
		return
	}

	hours := int(now.Sub(p.LastEnergyReset) / time.Hour)
	if hours >= 1 && p.Energy < energy.MaxEnergy {
		p.Energy += hours
		if p.Energy > energy.MaxEnergy {
			p.Energy = energy.MaxEnergy
		}
		p.LastEnergyReset = p.LastEnergyReset.Add(time.Duration(hours) * time.Hour)
	}
}

// ConsumeEnergy atomically decrements a user's refill-adjusted energy.
// Returns services.ErrInsufficientEnergy when the adjusted balance does not
// cover the amount. The FOR UPDATE lock serializes concurrent consumption
// for the same user, so at most floor(balance/amount) concurrent calls
// succeed and the balance never goes negative.
func (s *Store) ConsumeEnergy(ctx context.Context, userID string, amount int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "id = ?", userID).Error; err != nil {
			return err
		}

		refreshEnergy(&profile, time.Now())
		if profile.Energy < amount {
			return services.ErrInsufficientEnergy
		}
		profile.Energy -= amount

		return tx.Model(&profile).Updates(map[string]interface{}{
			"energy":            profile.Energy,
			"last_energy_reset": profile.LastEnergyReset,
		}).Error
	})
}

// GetEnergyWithRefill returns the refill-adjusted energy, persisting any
// refill so the stored value and anchor stay consistent.
func (s *Store) GetEnergyWithRefill(ctx context.Context, userID string) (int, error) {
	var current int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "id = ?", userID).Error; err != nil {
			return err
		}

		before := profile.Energy
		beforeReset := profile.LastEnergyReset
		refreshEnergy(&profile, time.Now())
		current = profile.Energy

		if profile.Energy == before && profile.LastEnergyReset.Equal(beforeReset) {
			return nil
		}
		return tx.Model(&profile).Updates(map[string]interface{}{
			"energy":            profile.Energy,
			"last_energy_reset": profile.LastEnergyReset,
		}).Error
	})
	return current, err
}
