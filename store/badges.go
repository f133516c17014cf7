package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/causewayapp/causeway/models"
	"github.com/causewayapp/causeway/services"
)

// CheckAndAwardBadges evaluates the catalog against the user's current
// totals and grants every newly qualifying badge plus its points reward,
// all inside one transaction. Returns the badges granted by this call.
func (s *Store) CheckAndAwardBadges(ctx context.Context, userID string) ([]services.AwardedBadge, error) {
	var awarded []services.AwardedBadge

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "id = ?", userID).Error; err != nil {
			return err
		}

		var commitCount int64
		if err := tx.Model(&models.Commitment{}).Where("user_id = ?", userID).Count(&commitCount).Error; err != nil {
			return err
		}

		var badges []models.Badge
		if err := tx.Order("requirement_value ASC").Find(&badges).Error; err != nil {
			return err
		}

		var earnedIDs []string
		if err := tx.Model(&models.UserBadge{}).Where("user_id = ?", userID).Pluck("badge_id", &earnedIDs).Error; err != nil {
			return err
		}
		earned := make(map[string]bool, len(earnedIDs))
		for _, id := range earnedIDs {
			earned[id] = true
		}

		reward := 0
		for _, badge := range badges {
			if earned[badge.ID] || !qualifies(badge, &profile, commitCount) {
				continue
			}
			if err := tx.Create(&models.UserBadge{UserID: userID, BadgeID: badge.ID}).Error; err != nil {
				return err
			}
			reward += badge.PointsReward
			awarded = append(awarded, services.AwardedBadge{Name: badge.Name, Icon: badge.Icon})
		}

		if reward > 0 {
			return tx.Model(&profile).Update("points", gorm.Expr("points + ?", reward)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

func qualifies(badge models.Badge, profile *models.Profile, commitCount int64) bool {
	switch badge.RequirementType {
	case models.BadgeRequirementCommitments:
		return commitCount >= int64(badge.RequirementValue)
	case models.BadgeRequirementPoints:
		return profile.Points >= badge.RequirementValue
	case models.BadgeRequirementStreak:
		return profile.CurrentStreak >= badge.RequirementValue
	default:
		return false
	}
}

// BadgeWithStatus is a catalog entry joined with the user's earned state.
type BadgeWithStatus struct {
	models.Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// ListBadgesWithStatus returns the full catalog ordered by requirement,
// flagging badges the user has earned.
func (s *Store) ListBadgesWithStatus(ctx context.Context, userID string) ([]BadgeWithStatus, error) {
	var badges []models.Badge
	if err := s.db.WithContext(ctx).Order("requirement_value ASC").Find(&badges).Error; err != nil {
		return nil, err
	}

	var userBadges []models.UserBadge
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&userBadges).Error; err != nil {
		return nil, err
	}
	earnedAt := make(map[string]time.Time, len(userBadges))
	for _, ub := range userBadges {
		earnedAt[ub.BadgeID] = ub.EarnedAt
	}

	result := make([]BadgeWithStatus, 0, len(badges))
	for _, b := range badges {
		item := BadgeWithStatus{Badge: b}
		if at, ok := earnedAt[b.ID]; ok {
			item.Earned = true
			t := at
			item.EarnedAt = &t
		}
		result = append(result, item)
	}
	return result, nil
}
