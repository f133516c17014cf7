package energy

import (
	"testing"
	"time"
)

var noon = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

func TestCurrentResetsAcrossMidnight(t *testing.T) {
	yesterday := noon.Add(-24 * time.Hour)

	for stored := 0; stored <= MaxEnergy; stored++ {
		if got := Current(stored, yesterday, noon); got != MaxEnergy {
			t.Fatalf("stored=%d lastReset=yesterday: got %d, want %d", stored, got, MaxEnergy)
		}
	}
}

func TestCurrentHourlyRegeneration(t *testing.T) {
	cases := []struct {
		name   string
		stored int
		ago    time.Duration
		want   int
	}{
		{"no full hour elapsed", 3, 30 * time.Minute, 3},
		{"one hour", 3, time.Hour, 4},
		{"several hours", 3, 5 * time.Hour, 8},
		{"capped at max", 8, 6 * time.Hour, MaxEnergy},
		{"already at max", MaxEnergy, 3 * time.Hour, MaxEnergy},
		{"zero energy thirty minutes ago", 0, 30 * time.Minute, 0},
		{"exactly one hour boundary", 0, time.Hour, 1},
		{"just under one hour", 0, time.Hour - time.Second, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Current(tc.stored, noon.Add(-tc.ago), noon); got != tc.want {
				t.Fatalf("Current(%d, now-%v) = %d, want %d", tc.stored, tc.ago, got, tc.want)
			}
		})
	}
}

func TestCurrentIdempotentWithinSameHour(t *testing.T) {
	lastReset := noon.Add(-90 * time.Minute)

	first := Current(4, lastReset, noon)
	second := Current(4, lastReset, noon.Add(10*time.Minute))
	if first != second {
		t.Fatalf("same-hour reads diverged: %d vs %d", first, second)
	}
}

func TestHasEnough(t *testing.T) {
	if HasEnough(0) {
		t.Fatal("zero energy should not allow a commit")
	}
	if !HasEnough(1) {
		t.Fatal("one energy should allow a commit")
	}
	if !HasEnough(MaxEnergy) {
		t.Fatal("full energy should allow a commit")
	}
}

func TestUntilNextNilAtMax(t *testing.T) {
	if got := UntilNext(MaxEnergy, noon); got != nil {
		t.Fatalf("expected nil countdown at max energy, got %+v", got)
	}
}

func TestUntilNextHourBoundary(t *testing.T) {
	// 12:41:30 -> next top of hour in 18m30s, midnight is further away.
	now := time.Date(2026, time.March, 10, 12, 41, 30, 0, time.Local)

	got := UntilNext(3, now)
	if got == nil {
		t.Fatal("expected a countdown below max energy")
	}
	if got.Minutes != 18 || got.Seconds != 30 {
		t.Fatalf("got %dm%ds, want 18m30s", got.Minutes, got.Seconds)
	}
}

func TestUntilNextAtDayEnd(t *testing.T) {
	// 23:59:40 -> the next hour boundary and midnight coincide, 20s out.
	now := time.Date(2026, time.March, 10, 23, 59, 40, 0, time.Local)

	got := UntilNext(3, now)
	if got == nil {
		t.Fatal("expected a countdown below max energy")
	}
	if got.Minutes != 0 || got.Seconds != 20 {
		t.Fatalf("got %dm%ds, want 0m20s", got.Minutes, got.Seconds)
	}
}
