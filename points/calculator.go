package points

const (
	basePoints       = 10
	earlyBonusPoints = 15

	// earlyCommitRatio is the share of the target below which a commitment
	// counts as early.
	earlyCommitRatio = 0.1
)

// CalculateCommitmentPoints returns the points awarded for a single
// commitment: a flat base, plus a bonus when the cause was still early.
func CalculateCommitmentPoints(isEarly bool) int {
	p := basePoints
	if isEarly {
		p += earlyBonusPoints
	}
	return p
}

// IsEarlyCommit reports whether progress is strictly below 10% of the
// target. Exactly 10% is not early. A zero target can never be early.
func IsEarlyCommit(current, target int) bool {
	return float64(current) < float64(target)*earlyCommitRatio
}
