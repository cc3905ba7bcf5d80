package engine

import (
	"strconv"

	bookingserrors "gudlft/internal/bookings/errors"
	"gudlft/pkg/model"
	"gudlft/pkg/sanitizer"
)

const (
	PointsPerPlace = 3

	MaxPlacesPerBooking = 12
)

// ParsePlaces turns the submitted places text into a positive count.
func ParsePlaces(text string) (int, error) {
	n, err := sanitizer.ParseWholeNumber(text)
	if err != nil || n <= 0 {
		return 0, &bookingserrors.MalformedPlacesError{Input: text}
	}
	return n, nil
}

// PurchasePlaces applies a purchase to club and competition. Rules are
// checked in order: capacity, per-booking maximum, points. The first failing
// rule is returned and neither argument is modified.
func PurchasePlaces(club *model.Club, competition *model.Competition, places int) (model.Receipt, error) {
	if places <= 0 {
		return model.Receipt{}, &bookingserrors.MalformedPlacesError{Input: strconv.Itoa(places)}
	}

	if places > competition.NumberOfPlaces {
		return model.Receipt{}, &bookingserrors.RejectionError{
			Reason:          bookingserrors.ReasonInsufficientCapacity,
			Requested:       places,
			RemainingPlaces: competition.NumberOfPlaces,
			PointsAvailable: club.Points,
		}
	}

	if places > MaxPlacesPerBooking {
		return model.Receipt{}, &bookingserrors.RejectionError{
			Reason:          bookingserrors.ReasonExceedsMaxPerBooking,
			Requested:       places,
			RemainingPlaces: competition.NumberOfPlaces,
			PointsAvailable: club.Points,
		}
	}

	cost := places * PointsPerPlace
	if cost > club.Points {
		return model.Receipt{}, &bookingserrors.RejectionError{
			Reason:          bookingserrors.ReasonInsufficientPoints,
			Requested:       places,
			RemainingPlaces: competition.NumberOfPlaces,
			PointsAvailable: club.Points,
		}
	}

	club.Points -= cost
	competition.NumberOfPlaces -= places

	return model.Receipt{
		Club:            club.Name,
		Competition:     competition.Name,
		PlacesBooked:    places,
		PointsSpent:     cost,
		PointsRemaining: club.Points,
		PlacesRemaining: competition.NumberOfPlaces,
	}, nil
}
