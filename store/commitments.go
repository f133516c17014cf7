package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/causewayapp/causeway/models"
)

// ErrThresholdUnavailable marks commits against missing or deactivated
// thresholds.
var ErrThresholdUnavailable = errors.New("threshold not available")

// InsertCommitment records an immutable commitment row after verifying the
// threshold still exists and is active.
func (s *Store) InsertCommitment(ctx context.Context, userID, thresholdID string, pointsEarned int) (string, error) {
	var commitmentID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var threshold models.Threshold
		if err := tx.First(&threshold, "id = ?", thresholdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrThresholdUnavailable
			}
			return err
		}
		if !threshold.IsActive {
			return ErrThresholdUnavailable
		}

		commitment := models.Commitment{
			UserID:       userID,
			ThresholdID:  thresholdID,
			PointsEarned: pointsEarned,
		}
		if err := tx.Create(&commitment).Error; err != nil {
			return err
		}
		commitmentID = commitment.ID
		return nil
	})
	return commitmentID, err
}

// IncrementPoints adds to a user's points total atomically.
func (s *Store) IncrementPoints(ctx context.Context, userID string, amount int) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementThresholdCount bumps collective progress. Progress only ever
// moves up and may pass the target.
func (s *Store) IncrementThresholdCount(ctx context.Context, thresholdID string) error {
	res := s.db.WithContext(ctx).Model(&models.Threshold{}).
		Where("id = ?", thresholdID).
		Update("current_count", gorm.Expr("current_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrThresholdUnavailable
	}
	return nil
}

// ThresholdSummary is the slice of a threshold shown in history rows.
type ThresholdSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	CurrentCount int    `json:"current_count"`
	TargetCount  int    `json:"target_count"`
}

// CommitmentHistoryItem is one row of a user's commitment history.
type CommitmentHistoryItem struct {
	ID           string           `json:"id"`
	ThresholdID  string           `json:"threshold_id"`
	PointsEarned int              `json:"points_earned"`
	CommittedAt  time.Time        `json:"committed_at"`
	Threshold    ThresholdSummary `json:"threshold"`
}

// CommitmentHistory lists a user's commitments newest-first, joined with a
// summary of the threshold each one supported.
func (s *Store) CommitmentHistory(ctx context.Context, userID string) ([]CommitmentHistoryItem, error) {
	var rows []struct {
		ID             string
		ThresholdID    string
		PointsEarned   int
		CommittedAt    time.Time
		ThresholdTitle string
		Category       string
		CurrentCount   int
		TargetCount    int
	}

	err := s.db.WithContext(ctx).Model(&models.Commitment{}).
		Select(`commitments.id, commitments.threshold_id, commitments.points_earned, commitments.committed_at,
			thresholds.title AS threshold_title, thresholds.category, thresholds.current_count, thresholds.target_count`).
		Joins("JOIN thresholds ON thresholds.id = commitments.threshold_id").
		Where("commitments.user_id = ?", userID).
		Order("commitments.committed_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]CommitmentHistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, CommitmentHistoryItem{
			ID:           r.ID,
			ThresholdID:  r.ThresholdID,
			PointsEarned: r.PointsEarned,
			CommittedAt:  r.CommittedAt,
			Threshold: ThresholdSummary{
				ID:           r.ThresholdID,
				Title:        r.ThresholdTitle,
				Category:     r.Category,
				CurrentCount: r.CurrentCount,
				TargetCount:  r.TargetCount,
			},
		})
	}
	return items, nil
}
