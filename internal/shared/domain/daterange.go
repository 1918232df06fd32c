package domain

import (
	"errors"
	"time"
)

// DateRange représente une période temporelle avec validation.
// Value Object: immutable, validé à la construction.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRangeFromDays crée un DateRange couvrant les N derniers jours.
func NewDateRangeFromDays(days int) (DateRange, error) {
	if days < 0 {
		return DateRange{}, errors.New("days cannot be negative")
	}
	now := time.Now()
	return DateRange{
		start: now.AddDate(0, 0, -days),
		end:   now,
	}, nil
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}
