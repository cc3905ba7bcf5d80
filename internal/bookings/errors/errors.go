package errors

import (
	"errors"
	"fmt"
)

var (
	ErrClubNotFound = errors.New("club not found")

	ErrCompetitionNotFound = errors.New("competition not found")

	ErrMalformedPlaces = errors.New("places must be a positive whole number")

	ErrCompetitionClosed = errors.New("competition is no longer open for booking")

	ErrRejected = errors.New("booking rejected")
)

// Reason identifies which booking rule refused a purchase.
type Reason string

const (
	ReasonInsufficientCapacity Reason = "INSUFFICIENT_CAPACITY"
	ReasonExceedsMaxPerBooking Reason = "EXCEEDS_MAX_PER_BOOKING"
	ReasonInsufficientPoints   Reason = "INSUFFICIENT_POINTS"
)

// RejectionError is returned by the booking engine when a purchase breaks a
// business rule. RemainingPlaces is only meaningful for capacity rejections.
type RejectionError struct {
	Reason          Reason
	Requested       int
	RemainingPlaces int
	PointsAvailable int
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonInsufficientCapacity:
		return fmt.Sprintf("booking rejected: %d places requested, %d remaining", e.Requested, e.RemainingPlaces)
	case ReasonInsufficientPoints:
		return fmt.Sprintf("booking rejected: %d places requested, %d points available", e.Requested, e.PointsAvailable)
	default:
		return fmt.Sprintf("booking rejected: %s", e.Reason)
	}
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

// MalformedPlacesError carries the raw places text that could not be used.
type MalformedPlacesError struct {
	Input string
}

func (e *MalformedPlacesError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMalformedPlaces.Error(), e.Input)
}

func (e *MalformedPlacesError) Is(target error) bool {
	return target == ErrMalformedPlaces
}

func AsRejection(err error) (*RejectionError, bool) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
