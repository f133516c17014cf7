package points

import "testing"

func TestCalculateCommitmentPoints(t *testing.T) {
	if got := CalculateCommitmentPoints(false); got != 10 {
		t.Fatalf("expected 10 points for regular commit, got %d", got)
	}
	if got := CalculateCommitmentPoints(true); got != 25 {
		t.Fatalf("expected 25 points for early commit, got %d", got)
	}
}

func TestIsEarlyCommit(t *testing.T) {
	cases := []struct {
		name    string
		current int
		target  int
		want    bool
	}{
		{"well below threshold", 5, 1000, true},
		{"just below threshold", 99, 1000, true},
		{"exactly at threshold", 100, 1000, false},
		{"above threshold", 500, 1000, false},
		{"zero target", 0, 0, false},
		{"zero target with progress", 3, 0, false},
		{"zero progress", 0, 10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEarlyCommit(tc.current, tc.target); got != tc.want {
				t.Fatalf("IsEarlyCommit(%d, %d) = %v, want %v", tc.current, tc.target, got, tc.want)
			}
		})
	}
}
