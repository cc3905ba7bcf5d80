package engine

import (
	"errors"
	"testing"
	"time"

	bookingserrors "gudlft/internal/bookings/errors"
	"gudlft/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClubs() []model.Club {
	return []model.Club{
		{Name: "Simply Lift", Email: "john@simplylift.co", Points: 13},
		{Name: "Iron Temple", Email: "admin@irontemple.com", Points: 4},
		{Name: "She Lifts", Email: "kate@shelifts.co.uk", Points: 12},
		{Name: "Simply Lift", Email: "second@simplylift.co", Points: 99},
	}
}

func TestFindClubByEmail(t *testing.T) {
	clubs := testClubs()

	club, ok := FindClubByEmail(clubs, "admin@irontemple.com")
	require.True(t, ok)
	assert.Equal(t, "Iron Temple", club.Name)

	_, ok = FindClubByEmail(clubs, "ADMIN@irontemple.com")
	assert.False(t, ok, "lookup must be case-sensitive")

	_, ok = FindClubByEmail(clubs, " admin@irontemple.com")
	assert.False(t, ok, "lookup must not trim")

	_, ok = FindClubByEmail(clubs, "")
	assert.False(t, ok)

	_, ok = FindClubByEmail(nil, "john@simplylift.co")
	assert.False(t, ok)
}

func TestFindClubByName_FirstMatchWins(t *testing.T) {
	clubs := testClubs()

	club, ok := FindClubByName(clubs, "Simply Lift")
	require.True(t, ok)
	assert.Equal(t, "john@simplylift.co", club.Email)

	club.Points = 1
	assert.Equal(t, 1, clubs[0].Points, "returned pointer aliases the slice element")
}

func TestFindCompetitionByName(t *testing.T) {
	competitions := []model.Competition{
		{Name: "Spring Festival", NumberOfPlaces: 25},
		{Name: "Fall Classic", NumberOfPlaces: 13},
	}

	comp, ok := FindCompetitionByName(competitions, "Fall Classic")
	require.True(t, ok)
	assert.Equal(t, 13, comp.NumberOfPlaces)

	_, ok = FindCompetitionByName(competitions, "fall classic")
	assert.False(t, ok)
}

func TestIsBookable(t *testing.T) {
	now := time.Date(2026, 3, 27, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "tomorrow", date: time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC), want: true},
		{name: "today earlier", date: time.Date(2026, 3, 27, 1, 0, 0, 0, time.UTC), want: false},
		{name: "today later", date: time.Date(2026, 3, 27, 23, 59, 0, 0, time.UTC), want: false},
		{name: "yesterday", date: time.Date(2026, 3, 26, 23, 0, 0, 0, time.UTC), want: false},
		{name: "next year", date: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "long past", date: time.Date(2020, 3, 27, 10, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsBookable(model.Competition{Name: "Gate", Date: tt.date}, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBookable_UsesCompetitionLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	comp := model.Competition{Date: time.Date(2026, 3, 28, 9, 0, 0, 0, loc)}

	// 2026-03-27 20:00 UTC is already 2026-03-28 in the competition's zone.
	now := time.Date(2026, 3, 27, 20, 0, 0, 0, time.UTC)
	assert.False(t, IsBookable(comp, now))

	now = time.Date(2026, 3, 27, 10, 0, 0, 0, time.UTC)
	assert.True(t, IsBookable(comp, now))
}

func TestParsePlaces(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "3", want: 3},
		{input: " 12 ", want: 12},
		{input: "13", want: 13},
		{input: "0", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "", wantErr: true},
		{input: "three", wantErr: true},
		{input: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlaces(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, bookingserrors.ErrMalformedPlaces)

				var malformed *bookingserrors.MalformedPlacesError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, tt.input, malformed.Input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPurchasePlaces_Rules(t *testing.T) {
	tests := []struct {
		name         string
		points       int
		capacity     int
		places       int
		wantReason   bookingserrors.Reason
		wantPoints   int
		wantCapacity int
	}{
		{
			name:     "capacity is checked before the per-booking maximum",
			points:   100,
			capacity: 5,
			places:   15,

			wantReason:   bookingserrors.ReasonInsufficientCapacity,
			wantPoints:   100,
			wantCapacity: 5,
		},
		{
			name:         "success debits points and places",
			points:       12,
			capacity:     25,
			places:       3,
			wantPoints:   3,
			wantCapacity: 22,
		},
		{
			name:         "insufficient points",
			points:       4,
			capacity:     25,
			places:       2,
			wantReason:   bookingserrors.ReasonInsufficientPoints,
			wantPoints:   4,
			wantCapacity: 25,
		},
		{
			name:         "more than twelve places",
			points:       100,
			capacity:     50,
			places:       13,
			wantReason:   bookingserrors.ReasonExceedsMaxPerBooking,
			wantPoints:   100,
			wantCapacity: 50,
		},
		{
			name:         "exactly twelve places",
			points:       36,
			capacity:     12,
			places:       12,
			wantPoints:   0,
			wantCapacity: 0,
		},
		{
			name:         "maximum is checked before points",
			points:       1,
			capacity:     50,
			places:       13,
			wantReason:   bookingserrors.ReasonExceedsMaxPerBooking,
			wantPoints:   1,
			wantCapacity: 50,
		},
		{
			name:         "sold out competition",
			points:       30,
			capacity:     0,
			places:       1,
			wantReason:   bookingserrors.ReasonInsufficientCapacity,
			wantPoints:   30,
			wantCapacity: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			club := &model.Club{Name: "Simply Lift", Email: "john@simplylift.co", Points: tt.points}
			comp := &model.Competition{Name: "Spring Festival", NumberOfPlaces: tt.capacity}

			receipt, err := PurchasePlaces(club, comp, tt.places)

			assert.Equal(t, tt.wantPoints, club.Points)
			assert.Equal(t, tt.wantCapacity, comp.NumberOfPlaces)

			if tt.wantReason != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, bookingserrors.ErrRejected)
				rejection, ok := bookingserrors.AsRejection(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantReason, rejection.Reason)
				assert.Equal(t, tt.capacity, rejection.RemainingPlaces)
				assert.Equal(t, model.Receipt{}, receipt)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.places, receipt.PlacesBooked)
			assert.Equal(t, tt.places*PointsPerPlace, receipt.PointsSpent)
			assert.Equal(t, tt.wantPoints, receipt.PointsRemaining)
			assert.Equal(t, tt.wantCapacity, receipt.PlacesRemaining)
			assert.Equal(t, "Simply Lift", receipt.Club)
			assert.Equal(t, "Spring Festival", receipt.Competition)
			assert.LessOrEqual(t, receipt.PlacesBooked, MaxPlacesPerBooking)
		})
	}
}

func TestPurchasePlaces_RepeatedPurchasesAccumulate(t *testing.T) {
	club := &model.Club{Name: "She Lifts", Points: 12}
	comp := &model.Competition{Name: "Fall Classic", NumberOfPlaces: 13}

	_, err := PurchasePlaces(club, comp, 2)
	require.NoError(t, err)
	_, err = PurchasePlaces(club, comp, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, club.Points)
	assert.Equal(t, 9, comp.NumberOfPlaces)

	_, err = PurchasePlaces(club, comp, 1)
	rejection, ok := bookingserrors.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, bookingserrors.ReasonInsufficientPoints, rejection.Reason)
	assert.Equal(t, 0, club.Points)
	assert.Equal(t, 9, comp.NumberOfPlaces)
}

func TestPurchasePlaces_NonPositiveIsMalformed(t *testing.T) {
	for _, places := range []int{0, -3} {
		club := &model.Club{Points: 30}
		comp := &model.Competition{NumberOfPlaces: 10}

		_, err := PurchasePlaces(club, comp, places)
		assert.ErrorIs(t, err, bookingserrors.ErrMalformedPlaces)
		assert.Equal(t, 30, club.Points)
		assert.Equal(t, 10, comp.NumberOfPlaces)
	}
}
