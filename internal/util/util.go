package util

import (
	"math"
	"time"
)

// Contains checks if a slice contains a specific string
func Contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}

// Round rounds to 2 decimals
func Round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Milliseconds converts a duration to fractional milliseconds, rounded to 2 decimals.
func Milliseconds(d time.Duration) float64 {
	return Round(float64(d) / float64(time.Millisecond))
}

// PerSecond returns count/d rounded to 2 decimals, or 0 when d is not positive.
func PerSecond(count int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return Round(float64(count) / d.Seconds())
}
