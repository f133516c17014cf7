package services

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeBackend is an in-memory stand-in for the authoritative store. Energy
// consumption is serialized with a mutex so the concurrency contract can be
// asserted against it.
type fakeBackend struct {
	mu     sync.Mutex
	energy int

	commitments     []string
	points          int
	thresholdCounts map[string]int
	streakCalls     int
	badgeCalls      int

	consumeErr   error
	insertErr    error
	pointsErr    error
	countErr     error
	streakErr    error
	badgeErr     error
	energyReadOK bool
}

func newFakeBackend(energy int) *fakeBackend {
	return &fakeBackend{
		energy:          energy,
		thresholdCounts: map[string]int{},
		energyReadOK:    true,
	}
}

func (f *fakeBackend) ConsumeEnergy(ctx context.Context, userID string, amount int) error {
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.energy < amount {
		return ErrInsufficientEnergy
	}
	f.energy -= amount
	return nil
}

func (f *fakeBackend) GetEnergyWithRefill(ctx context.Context, userID string) (int, error) {
	if !f.energyReadOK {
		return 0, errors.New("energy read unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.energy, nil
}

func (f *fakeBackend) InsertCommitment(ctx context.Context, userID, thresholdID string, pointsEarned int) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commitments = append(f.commitments, thresholdID)
	return "commitment-1", nil
}

func (f *fakeBackend) IncrementPoints(ctx context.Context, userID string, amount int) error {
	if f.pointsErr != nil {
		return f.pointsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points += amount
	return nil
}

func (f *fakeBackend) IncrementThresholdCount(ctx context.Context, thresholdID string) error {
	if f.countErr != nil {
		return f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.thresholdCounts[thresholdID]++
	return nil
}

func (f *fakeBackend) UpdateUserStreak(ctx context.Context, userID string) error {
	f.mu.Lock()
	f.streakCalls++
	f.mu.Unlock()
	return f.streakErr
}

func (f *fakeBackend) CheckAndAwardBadges(ctx context.Context, userID string) ([]AwardedBadge, error) {
	f.mu.Lock()
	f.badgeCalls++
	f.mu.Unlock()
	if f.badgeErr != nil {
		return nil, f.badgeErr
	}
	return nil, nil
}

func newTestService(backend Backend) *CommitmentService {
	s := NewCommitmentService(backend, nil)
	s.invalidate = func(string) {}
	return s
}

func TestCommitEarlyAwardsBonus(t *testing.T) {
	backend := newFakeBackend(10)
	svc := newTestService(backend)

	res, err := svc.Commit(context.Background(), "user-1", ThresholdSnapshot{
		ThresholdID:  "th-1",
		CurrentCount: 5,
		TargetCount:  1000,
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !res.EarlyCommit || res.PointsEarned != 25 {
		t.Fatalf("expected early commit worth 25 points, got %+v", res)
	}
	if backend.points != 25 {
		t.Fatalf("expected 25 points persisted, got %d", backend.points)
	}
	if backend.thresholdCounts["th-1"] != 1 {
		t.Fatalf("expected threshold count incremented once, got %d", backend.thresholdCounts["th-1"])
	}
	if backend.energy != 9 {
		t.Fatalf("expected one energy consumed, got %d remaining", backend.energy)
	}
}

func TestCommitRegularAwardsBase(t *testing.T) {
	backend := newFakeBackend(10)
	svc := newTestService(backend)

	res, err := svc.Commit(context.Background(), "user-1", ThresholdSnapshot{
		ThresholdID:  "th-1",
		CurrentCount: 500,
		TargetCount:  1000,
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if res.EarlyCommit || res.PointsEarned != 10 {
		t.Fatalf("expected regular commit worth 10 points, got %+v", res)
	}
}

func TestCommitShortCircuitsOnZeroEnergy(t *testing.T) {
	backend := newFakeBackend(0)
	svc := newTestService(backend)

	_, err := svc.Commit(context.Background(), "user-1", ThresholdSnapshot{ThresholdID: "th-1", TargetCount: 100})
	if !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("expected ErrInsufficientEnergy, got %v", err)
	}
	if len(backend.commitments) != 0 || backend.points != 0 {
		t.Fatal("persistence must not run when the advisory gate fails")
	}
}

func TestCommitAuthoritativeGateWinsOverAdvisory(t *testing.T) {
	// Advisory read unavailable: the workflow proceeds and the atomic
	// consume is still the authority.
	backend := newFakeBackend(0)
	backend.energyReadOK = false
	svc := newTestService(backend)

	_, err := svc.Commit(context.Background(), "user-1", ThresholdSnapshot{ThresholdID: "th-1", TargetCount: 100})
	if !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("expected ErrInsufficientEnergy from authoritative gate, got %v", err)
	}
	if len(backend.commitments) != 0 {
		t.Fatal("no commitment may be recorded after a failed consume")
	}
}

func TestCommitRequiresIdentity(t *testing.T) {
	backend := newFakeBackend(10)
	svc := newTestService(backend)

	_, err := svc.Commit(context.Background(), "", ThresholdSnapshot{ThresholdID: "th-1"})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if backend.energy != 10 {
		t.Fatal("no remote call may happen without identity")
	}
}

func TestCommitAbortsOnPersistenceFailure(t *testing.T) {
	backend := newFakeBackend(10)
	backend.insertErr = errors.New("insert exploded")
	svc := newTestService(backend)

	_, err := svc.Commit(context.Background(), "user-1", ThresholdSnapshot{ThresholdID: "th-1", TargetCount: 100})
	if err == nil {
		t.Fatal("expected persistence failure to propagate")
	}
	if backend.streakCalls != 0 || backend.badgeCalls != 0 {
		t.Fatal("side effects must not run after an aborted workflow")
	}
}

func TestCommitSwallowsSideEffectFailures(t *testing.T) {
	backend := newFakeBackend(10)
	backend.streakErr = errors.New("streak service down")
	backend.badgeErr = errors.New("badge service down")
	svc := newTestService(backend)

	res, err := svc.Commit(context.Background(), "user-1", ThresholdSnapshot{ThresholdID: "th-1", TargetCount: 100})
	if err != nil {
		t.Fatalf("side effect failures must not fail the commit: %v", err)
	}
	if res.PointsEarned != 10 {
		t.Fatalf("unexpected result %+v", res)
	}
	if backend.streakCalls != 1 || backend.badgeCalls != 1 {
		t.Fatal("side effects should have been attempted")
	}
}

func TestConcurrentConsumeOfLastEnergyUnit(t *testing.T) {
	backend := newFakeBackend(1)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- backend.ConsumeEnergy(context.Background(), "user-1", 1)
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientEnergy):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || insufficient != 1 {
		t.Fatalf("expected exactly one success and one insufficient-energy failure, got ok=%d insufficient=%d", ok, insufficient)
	}
	if backend.energy != 0 {
		t.Fatalf("energy went to %d, must never go negative", backend.energy)
	}
}

func TestTaskQueueRetriesAndDrains(t *testing.T) {
	q := NewTaskQueue()

	var mu sync.Mutex
	attempts := 0
	q.Enqueue("flaky", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Fatalf("expected a retry after one transient failure, got %d attempts", attempts)
	}
}
