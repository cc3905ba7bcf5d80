// Package testutil holds the sample club and competition records tests run against.
package testutil

import (
	"time"

	"gudlft/pkg/model"
)

// ReferenceClubs are the clubs of the sample fixture file.
func ReferenceClubs() []model.Club {
	return []model.Club{
		{Name: "Simply Lift", Email: "john@simplylift.co", Points: 13},
		{Name: "Iron Temple", Email: "admin@irontemple.com", Points: 4},
		{Name: "She Lifts", Email: "kate@shelifts.co.uk", Points: 12},
	}
}

// ReferenceCompetitions returns the sample competitions re-dated relative to
// now: Spring Festival is in the future and Fall Classic is in the past.
func ReferenceCompetitions(now time.Time) []model.Competition {
	return []model.Competition{
		{Name: "Spring Festival", Date: now.AddDate(0, 0, 30).UTC().Truncate(time.Second), NumberOfPlaces: 25},
		{Name: "Fall Classic", Date: now.AddDate(0, 0, -30).UTC().Truncate(time.Second), NumberOfPlaces: 13},
	}
}
