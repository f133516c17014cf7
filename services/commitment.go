package services

import (
	"context"
	"fmt"

	"github.com/causewayapp/causeway/energy"
	"github.com/causewayapp/causeway/points"
	"github.com/causewayapp/causeway/utils"
)

// ThresholdSnapshot carries the threshold counters as seen at swipe time.
// The early-commit determination runs against this snapshot, not against a
// re-fetched row, so it can be stale relative to concurrent commits by other
// users. That race is accepted.
type ThresholdSnapshot struct {
	ThresholdID  string
	CurrentCount int
	TargetCount  int
}

// CommitResult reports the outcome of a successful commit.
type CommitResult struct {
	CommitmentID string `json:"commitment_id"`
	PointsEarned int    `json:"points_earned"`
	EarlyCommit  bool   `json:"early_commit"`
}

// CommitmentService orchestrates a single swipe-right action: energy gate,
// points computation, persistence, best-effort side effects and cache
// invalidation. The backend is injected so the workflow can run against a
// stand-in in tests.
type CommitmentService struct {
	backend Backend
	tasks   *TaskQueue

	// invalidate is swapped out in tests to avoid a Redis dependency.
	invalidate func(prefix string)
}

// NewCommitmentService builds the workflow around an authoritative backend.
// A nil queue runs side effects inline, still best-effort.
func NewCommitmentService(backend Backend, tasks *TaskQueue) *CommitmentService {
	return &CommitmentService{
		backend:    backend,
		tasks:      tasks,
		invalidate: utils.InvalidateByPrefix,
	}
}

// Commit runs the workflow for one user action. Energy and persistence
// failures abort and propagate; streak and badge failures are logged only.
// The advisory pre-check is an optimization: the authoritative gate is the
// atomic ConsumeEnergy inside the backend.
func (s *CommitmentService) Commit(ctx context.Context, userID string, snap ThresholdSnapshot) (*CommitResult, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if current, err := s.backend.GetEnergyWithRefill(ctx, userID); err == nil && !energy.HasEnough(current) {
		return nil, ErrInsufficientEnergy
	}

	early := points.IsEarlyCommit(snap.CurrentCount, snap.TargetCount)
	earned := points.CalculateCommitmentPoints(early)

	if err := s.backend.ConsumeEnergy(ctx, userID, energy.PerCommit); err != nil {
		return nil, err
	}

	commitmentID, err := s.backend.InsertCommitment(ctx, userID, snap.ThresholdID, earned)
	if err != nil {
		return nil, fmt.Errorf("insert commitment: %w", err)
	}
	if err := s.backend.IncrementPoints(ctx, userID, earned); err != nil {
		return nil, fmt.Errorf("increment points: %w", err)
	}
	if err := s.backend.IncrementThresholdCount(ctx, snap.ThresholdID); err != nil {
		return nil, fmt.Errorf("increment threshold count: %w", err)
	}

	s.runSideEffect("streak:"+userID, func(ctx context.Context) error {
		return s.backend.UpdateUserStreak(ctx, userID)
	})
	s.runSideEffect("badges:"+userID, func(ctx context.Context) error {
		awarded, err := s.backend.CheckAndAwardBadges(ctx, userID)
		if err != nil {
			return err
		}
		for _, b := range awarded {
			infow("badge awarded", "user_id", userID, "badge", b.Name)
		}
		if len(awarded) > 0 {
			s.invalidate("cache:badges:user:" + userID)
			s.invalidate("cache:profile:" + userID)
		}
		return nil
	})

	s.invalidateProjections(userID)

	return &CommitResult{CommitmentID: commitmentID, PointsEarned: earned, EarlyCommit: early}, nil
}

func (s *CommitmentService) runSideEffect(name string, run func(ctx context.Context) error) {
	if s.tasks != nil {
		s.tasks.Enqueue(name, run)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()
	if err := run(ctx); err != nil {
		warnf("side effect %s failed: %v", name, err)
	}
}

// invalidateProjections drops every cached read projection a commit can
// touch. Aggregates are never patched locally; readers re-fetch.
func (s *CommitmentService) invalidateProjections(userID string) {
	s.invalidate("cache:thresholds:user:" + userID)
	s.invalidate("cache:profile:" + userID)
	s.invalidate("cache:commitments:user:" + userID)
	s.invalidate("cache:badges:user:" + userID)
	s.invalidate("cache:leaderboard")
}

func warnf(format string, args ...interface{}) {
	if utils.Sugar != nil {
		utils.Sugar.Warnf(format, args...)
	}
}

func infow(msg string, kv ...interface{}) {
	if utils.Sugar != nil {
		utils.Sugar.Infow(msg, kv...)
	}
}
