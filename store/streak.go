package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/causewayapp/causeway/models"
)

// UpdateUserStreak advances the consecutive-day activity counter: +1 when
// the last activity was yesterday, reset to 1 after a gap, no-op when
// already counted today. Longest streak is maintained alongside.
func (s *Store) UpdateUserStreak(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "id = ?", userID).Error; err != nil {
			return err
		}

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		streak := 1
		if last := profile.LastActivityDate; last != nil {
			if sameDay(*last, today) {
				return nil
			}
			if isYesterday(*last, today) {
				streak = profile.CurrentStreak + 1
			}
		}

		profile.CurrentStreak = streak
		if streak > profile.LongestStreak {
			profile.LongestStreak = streak
		}
		profile.LastActivityDate = &today

		return tx.Model(&profile).Updates(map[string]interface{}{
			"current_streak":     profile.CurrentStreak,
			"longest_streak":     profile.LongestStreak,
			"last_activity_date": profile.LastActivityDate,
		}).Error
	})
}
