package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gudlft/internal/bookings/engine"
	bookingserrors "gudlft/internal/bookings/errors"
	"gudlft/internal/fixtures"
	"gudlft/internal/testutil"
	"gudlft/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceRegistry() *InMemoryRegistry {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewInMemoryRegistry(testutil.ReferenceClubs(), testutil.ReferenceCompetitions(now))
}

func TestInMemoryRegistry_Lookups(t *testing.T) {
	ctx := context.Background()
	reg := newReferenceRegistry()

	club, err := reg.FindClubByEmail(ctx, "kate@shelifts.co.uk")
	require.NoError(t, err)
	assert.Equal(t, "She Lifts", club.Name)

	club, err = reg.FindClubByName(ctx, "Iron Temple")
	require.NoError(t, err)
	assert.Equal(t, 4, club.Points)

	comp, err := reg.FindCompetitionByName(ctx, "Spring Festival")
	require.NoError(t, err)
	assert.Equal(t, 25, comp.NumberOfPlaces)

	_, err = reg.FindClubByEmail(ctx, "unknown@example.com")
	assert.ErrorIs(t, err, bookingserrors.ErrClubNotFound)

	_, err = reg.FindClubByName(ctx, "iron temple")
	assert.ErrorIs(t, err, bookingserrors.ErrClubNotFound)

	_, err = reg.FindCompetitionByName(ctx, "Winter Games")
	assert.ErrorIs(t, err, bookingserrors.ErrCompetitionNotFound)
}

func TestInMemoryRegistry_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	clubs := testutil.ReferenceClubs()
	reg := NewInMemoryRegistry(clubs, nil)

	clubs[0].Points = 0
	club, err := reg.FindClubByName(ctx, "Simply Lift")
	require.NoError(t, err)
	assert.Equal(t, 13, club.Points, "registry must not alias the input slice")

	listed, err := reg.ListClubs(ctx)
	require.NoError(t, err)
	listed[0].Points = 0

	club, err = reg.FindClubByName(ctx, "Simply Lift")
	require.NoError(t, err)
	assert.Equal(t, 13, club.Points, "ListClubs must return a copy")
}

func TestInMemoryRegistry_ListKeepsFixtureOrder(t *testing.T) {
	ctx := context.Background()
	reg := newReferenceRegistry()

	clubs, err := reg.ListClubs(ctx)
	require.NoError(t, err)
	require.Len(t, clubs, 3)
	assert.Equal(t, []string{"Simply Lift", "Iron Temple", "She Lifts"},
		[]string{clubs[0].Name, clubs[1].Name, clubs[2].Name})

	comps, err := reg.ListCompetitions(ctx)
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, "Spring Festival", comps[0].Name)

	nClubs, nComps, err := reg.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, nClubs)
	assert.Equal(t, 2, nComps)
}

func TestInMemoryRegistry_ExecuteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		reg := newReferenceRegistry()

		err := reg.ExecuteTransaction(ctx, "She Lifts", "Spring Festival", func(club *model.Club, comp *model.Competition) error {
			_, err := engine.PurchasePlaces(club, comp, 3)
			return err
		})
		require.NoError(t, err)

		club, _ := reg.FindClubByName(ctx, "She Lifts")
		comp, _ := reg.FindCompetitionByName(ctx, "Spring Festival")
		assert.Equal(t, 3, club.Points)
		assert.Equal(t, 22, comp.NumberOfPlaces)
	})

	t.Run("discards working copies on error", func(t *testing.T) {
		reg := newReferenceRegistry()
		boom := errors.New("boom")

		err := reg.ExecuteTransaction(ctx, "She Lifts", "Spring Festival", func(club *model.Club, comp *model.Competition) error {
			club.Points = 0
			comp.NumberOfPlaces = 0
			return boom
		})
		assert.ErrorIs(t, err, boom)

		club, _ := reg.FindClubByName(ctx, "She Lifts")
		comp, _ := reg.FindCompetitionByName(ctx, "Spring Festival")
		assert.Equal(t, 12, club.Points)
		assert.Equal(t, 25, comp.NumberOfPlaces)
	})

	t.Run("refuses negative balances", func(t *testing.T) {
		reg := newReferenceRegistry()

		err := reg.ExecuteTransaction(ctx, "Iron Temple", "Spring Festival", func(club *model.Club, _ *model.Competition) error {
			club.Points = -1
			return nil
		})
		require.Error(t, err)

		club, _ := reg.FindClubByName(ctx, "Iron Temple")
		assert.Equal(t, 4, club.Points)
	})

	t.Run("unknown club", func(t *testing.T) {
		reg := newReferenceRegistry()
		called := false

		err := reg.ExecuteTransaction(ctx, "Nobody", "Spring Festival", func(*model.Club, *model.Competition) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, bookingserrors.ErrClubNotFound)
		assert.False(t, called)
	})

	t.Run("unknown competition", func(t *testing.T) {
		reg := newReferenceRegistry()

		err := reg.ExecuteTransaction(ctx, "She Lifts", "Nothing", func(*model.Club, *model.Competition) error {
			return nil
		})
		assert.ErrorIs(t, err, bookingserrors.ErrCompetitionNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		reg := newReferenceRegistry()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := reg.ExecuteTransaction(cancelled, "She Lifts", "Spring Festival", func(*model.Club, *model.Competition) error {
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestInMemoryRegistry_ConcurrentPurchasesNeverOversell(t *testing.T) {
	ctx := context.Background()
	gen := fixtures.NewGenerator(42)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	clubs := gen.Clubs(8, 0, 60)
	comps := gen.Competitions(3, 0, 40, now, now.AddDate(0, 6, 0))
	reg := NewInMemoryRegistry(clubs, comps)

	startPoints := 0
	for _, c := range clubs {
		startPoints += c.Points
	}
	startPlaces := 0
	for _, c := range comps {
		startPlaces += c.NumberOfPlaces
	}

	type attempt struct {
		club, comp string
		places     int
	}
	attempts := make([]attempt, 400)
	for i := range attempts {
		attempts[i] = attempt{
			club:   clubs[i%len(clubs)].Name,
			comp:   comps[i%len(comps)].Name,
			places: gen.Places(engine.MaxPlacesPerBooking + 2),
		}
	}

	var (
		mu           sync.Mutex
		bookedPlaces int
		spentPoints  int
		wg           sync.WaitGroup
	)
	for _, a := range attempts {
		wg.Add(1)
		go func(a attempt) {
			defer wg.Done()
			var receipt model.Receipt
			err := reg.ExecuteTransaction(ctx, a.club, a.comp, func(club *model.Club, comp *model.Competition) error {
				var err error
				receipt, err = engine.PurchasePlaces(club, comp, a.places)
				return err
			})
			if err != nil {
				return
			}
			mu.Lock()
			bookedPlaces += receipt.PlacesBooked
			spentPoints += receipt.PointsSpent
			mu.Unlock()
		}(a)
	}
	wg.Wait()

	finalClubs, err := reg.ListClubs(ctx)
	require.NoError(t, err)
	finalComps, err := reg.ListCompetitions(ctx)
	require.NoError(t, err)

	endPoints := 0
	for _, c := range finalClubs {
		assert.GreaterOrEqual(t, c.Points, 0, "club %s went negative", c.Name)
		endPoints += c.Points
	}
	endPlaces := 0
	for _, c := range finalComps {
		assert.GreaterOrEqual(t, c.NumberOfPlaces, 0, "competition %s went negative", c.Name)
		endPlaces += c.NumberOfPlaces
	}

	assert.Equal(t, startPoints-spentPoints, endPoints, "seed %d", gen.Seed())
	assert.Equal(t, startPlaces-bookedPlaces, endPlaces, "seed %d", gen.Seed())
	assert.Equal(t, bookedPlaces*engine.PointsPerPlace, spentPoints)
}
