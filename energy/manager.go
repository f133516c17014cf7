package energy

import "time"

const (
	// MaxEnergy is the per-user energy ceiling.
	MaxEnergy = 10
	// PerCommit is the energy cost of a single commitment.
	PerCommit = 1
)

// Countdown is the remaining time until the next energy point.
type Countdown struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Current derives the effective energy from the stored value and the last
// reset anchor. Two refill rules apply:
//   - crossing local midnight since lastReset restores the full MaxEnergy
//   - within the same day, +1 per full elapsed hour while below max, capped
//
// The result must be re-derived on every read; it is never persisted or
// cached here. Advancing the anchor is the store's job.
func Current(stored int, lastReset, now time.Time) int {
	lastReset = lastReset.In(now.Location())

	if !sameDay(lastReset, now) {
		return MaxEnergy
	}

	hours := int(now.Sub(lastReset) / time.Hour)
	if hours >= 1 && stored < MaxEnergy {
		if stored+hours > MaxEnergy {
			return MaxEnergy
		}
		return stored + hours
	}

	return stored
}

// HasEnough reports whether current energy covers one commitment.
func HasEnough(current int) bool {
	return current >= PerCommit
}

// UntilNext returns the time remaining until the next energy point, or nil
// when energy is already full. The next point arrives at whichever comes
// first: the next top-of-hour or local midnight. This anchors to the wall
// clock rather than to the refill anchor, which keeps it an approximation.
func UntilNext(current int, now time.Time) *Countdown {
	if current >= MaxEnergy {
		return nil
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	nextHour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour)

	untilMidnight := midnight.Sub(now)
	untilHour := nextHour.Sub(now)

	until := untilMidnight
	if untilHour < until {
		until = untilHour
	}

	total := int(until / time.Second)
	return &Countdown{Minutes: total / 60, Seconds: total % 60}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
