package store

import (
	"context"

	"github.com/causewayapp/causeway/models"
	"github.com/causewayapp/causeway/utils"
)

// ListOpenThresholds returns active thresholds the user has not yet
// committed to, newest first. A committed threshold disappears from the
// user's deck on the next read.
func (s *Store) ListOpenThresholds(ctx context.Context, userID string) ([]models.Threshold, error) {
	var committedIDs []string
	if err := s.db.WithContext(ctx).Model(&models.Commitment{}).
		Where("user_id = ?", userID).
		Pluck("threshold_id", &committedIDs).Error; err != nil {
		return nil, err
	}
	committedIDs = utils.UniqueString(committedIDs)

	query := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC")
	if len(committedIDs) > 0 {
		query = query.Where("id NOT IN ?", committedIDs)
	}

	var thresholds []models.Threshold
	if err := query.Find(&thresholds).Error; err != nil {
		return nil, err
	}
	return thresholds, nil
}

// GetOrCreateProfile loads a profile, creating it lazily on first contact
// since account creation happens at the external identity provider.
func (s *Store) GetOrCreateProfile(ctx context.Context, userID, username string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where(models.Profile{ID: userID}).
		Attrs(models.Profile{Username: username}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// LeaderboardEntry is the read-only ranking projection. Recomputed on every
// uncached read; clients treat it as a point-in-time snapshot.
type LeaderboardEntry struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Points        int    `json:"points"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	TotalCommits  int64  `json:"total_commits"`
	BadgeCount    int64  `json:"badge_count"`
	Rank          int    `json:"rank"`
}

// Leaderboard returns the top-N profiles by points with commit and badge
// aggregates. Rank is dense by position.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Select(`profiles.id, profiles.username, profiles.points, profiles.current_streak, profiles.longest_streak,
			(SELECT COUNT(*) FROM commitments WHERE commitments.user_id = profiles.id) AS total_commits,
			(SELECT COUNT(*) FROM user_badges WHERE user_badges.user_id = profiles.id) AS badge_count`).
		Order("profiles.points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
