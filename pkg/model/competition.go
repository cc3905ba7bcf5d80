package model

import "time"

// Competition is an event whose places clubs can buy with points.
type Competition struct {
	Name           string    `json:"name" yaml:"name" validate:"required,max=100"`
	Date           time.Time `json:"date" yaml:"date" validate:"required"`
	NumberOfPlaces int       `json:"number_of_places" yaml:"numberOfPlaces" validate:"min=0"`
}

// CompetitionView is a competition as listed to a club, flagged with
// whether it can still be booked.
type CompetitionView struct {
	Competition
	Bookable bool `json:"bookable"`
}

type BookingView struct {
	Club        Club        `json:"club"`
	Competition Competition `json:"competition"`
}
