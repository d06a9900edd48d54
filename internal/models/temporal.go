package models

import (
	"fmt"
	"time"
)

// IsActiveAt reports whether ref lies in the closed interval [start, end].
// A nil bound is unbounded on that side, so an entity with no end date stays
// active forever and an entity with no start date has always been active.
func IsActiveAt(start, end *time.Time, ref time.Time) bool {
	if start != nil && ref.Before(*start) {
		return false
	}
	if end != nil && ref.After(*end) {
		return false
	}
	return true
}

// IsActiveNow is IsActiveAt with the current time as reference.
func IsActiveNow(start, end *time.Time) bool {
	return IsActiveAt(start, end, time.Now())
}

// DaysRemaining returns the whole number of days between ref and end.
// It returns 0 when end is unset or already behind ref.
func DaysRemaining(end *time.Time, ref time.Time) int {
	if end == nil || ref.After(*end) {
		return 0
	}
	return int(end.Sub(ref).Hours() / 24)
}

// IsExpiringSoon reports whether the window is active at ref and ends within
// thresholdDays. A negative threshold is rejected.
func IsExpiringSoon(start, end *time.Time, ref time.Time, thresholdDays int) (bool, error) {
	if thresholdDays < 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidThreshold, thresholdDays)
	}
	return IsActiveAt(start, end, ref) && DaysRemaining(end, ref) <= thresholdDays, nil
}
