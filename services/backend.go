package services

import (
	"context"
	"errors"
)

// Workflow-level error conditions. ErrInsufficientEnergy is surfaced to the
// caller as a non-retryable-until-refill condition; implementations of
// Backend must return it (possibly wrapped) from ConsumeEnergy when the
// refill-adjusted energy does not cover the requested amount.
var (
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrUnauthenticated    = errors.New("user not authenticated")
)

// AwardedBadge describes a badge granted during post-commit evaluation.
type AwardedBadge struct {
	Name string `json:"badge_name"`
	Icon string `json:"badge_icon"`
}

// Backend is the authoritative operation contract backing the commitment
// economy. Energy, points, threshold counts and streaks are shared mutable
// counters owned exclusively by the implementation; callers never perform
// read-modify-write on them. ConsumeEnergy must serialize concurrent
// consumption for the same user so that energy never goes negative.
type Backend interface {
	ConsumeEnergy(ctx context.Context, userID string, amount int) error
	GetEnergyWithRefill(ctx context.Context, userID string) (int, error)
	InsertCommitment(ctx context.Context, userID, thresholdID string, pointsEarned int) (string, error)
	IncrementPoints(ctx context.Context, userID string, amount int) error
	IncrementThresholdCount(ctx context.Context, thresholdID string) error
	UpdateUserStreak(ctx context.Context, userID string) error
	CheckAndAwardBadges(ctx context.Context, userID string) ([]AwardedBadge, error)
}
