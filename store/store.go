// Package store is the authoritative implementation of the commitment
// economy on MySQL. All shared counters (energy, points, threshold progress,
// streaks) are mutated only here, inside transactions holding a row lock, so
// concurrent commit attempts for the same user serialize at the database.
package store

import (
	"time"

	"gorm.io/gorm"
)

// Store implements services.Backend and the read projections.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an initialized gorm DB.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func isYesterday(last, today time.Time) bool {
	yesterday := today.Add(-24 * time.Hour)
	return last.Year() == yesterday.Year() && last.YearDay() == yesterday.YearDay()
}
