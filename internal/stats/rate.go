// Package stats aggregates match records into win rates, streaks, deck
// distributions and the ordered rows of the record list.
package stats

import "math"

// Percent returns count/denominator*100 rounded to one decimal place.
// A zero denominator yields 0.
func Percent(count, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(denominator)*1000) / 10
}
