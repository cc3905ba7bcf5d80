package engine

import (
	"time"

	"gudlft/pkg/model"
)

// IsBookable reports whether the competition's calendar day is strictly
// after the calendar day of now. Days are compared in the location of the
// competition date.
func IsBookable(competition model.Competition, now time.Time) bool {
	loc := competition.Date.Location()
	return startOfDay(competition.Date, loc).After(startOfDay(now.In(loc), loc))
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
