package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"gudlft/internal/bookings/engine"
	bookingserrors "gudlft/internal/bookings/errors"
	"gudlft/pkg/model"
)

// TransactionFunc receives working copies of a club and a competition. The
// copies are written back only when it returns nil.
type TransactionFunc func(club *model.Club, competition *model.Competition) error

type Registry interface {
	FindClubByEmail(ctx context.Context, email string) (model.Club, error)
	FindClubByName(ctx context.Context, name string) (model.Club, error)
	FindCompetitionByName(ctx context.Context, name string) (model.Competition, error)
	ListClubs(ctx context.Context) ([]model.Club, error)
	ListCompetitions(ctx context.Context) ([]model.Competition, error)
	Counts(ctx context.Context) (clubs int, competitions int, err error)
	ExecuteTransaction(ctx context.Context, clubName, competitionName string, fn TransactionFunc) error
}

// InMemoryRegistry owns the club and competition records for the life of
// the process. All mutation goes through ExecuteTransaction.
type InMemoryRegistry struct {
	mu           sync.RWMutex
	clubs        []model.Club
	competitions []model.Competition
}

func NewInMemoryRegistry(clubs []model.Club, competitions []model.Competition) *InMemoryRegistry {
	return &InMemoryRegistry{
		clubs:        slices.Clone(clubs),
		competitions: slices.Clone(competitions),
	}
}

func (r *InMemoryRegistry) FindClubByEmail(ctx context.Context, email string) (model.Club, error) {
	if err := ctx.Err(); err != nil {
		return model.Club{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	club, ok := engine.FindClubByEmail(r.clubs, email)
	if !ok {
		return model.Club{}, bookingserrors.ErrClubNotFound
	}
	return *club, nil
}

func (r *InMemoryRegistry) FindClubByName(ctx context.Context, name string) (model.Club, error) {
	if err := ctx.Err(); err != nil {
		return model.Club{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	club, ok := engine.FindClubByName(r.clubs, name)
	if !ok {
		return model.Club{}, bookingserrors.ErrClubNotFound
	}
	return *club, nil
}

func (r *InMemoryRegistry) FindCompetitionByName(ctx context.Context, name string) (model.Competition, error) {
	if err := ctx.Err(); err != nil {
		return model.Competition{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := engine.FindCompetitionByName(r.competitions, name)
	if !ok {
		return model.Competition{}, bookingserrors.ErrCompetitionNotFound
	}
	return *comp, nil
}

// ListClubs returns the clubs in fixture order.
func (r *InMemoryRegistry) ListClubs(ctx context.Context) ([]model.Club, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.clubs), nil
}

func (r *InMemoryRegistry) ListCompetitions(ctx context.Context) ([]model.Competition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.competitions), nil
}

func (r *InMemoryRegistry) Counts(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clubs), len(r.competitions), nil
}

// ExecuteTransaction resolves both records and runs fn under the write lock,
// so the checks fn performs and the values it commits cannot interleave with
// another purchase.
func (r *InMemoryRegistry) ExecuteTransaction(ctx context.Context, clubName, competitionName string, fn TransactionFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	club, ok := engine.FindClubByName(r.clubs, clubName)
	if !ok {
		return bookingserrors.ErrClubNotFound
	}
	comp, ok := engine.FindCompetitionByName(r.competitions, competitionName)
	if !ok {
		return bookingserrors.ErrCompetitionNotFound
	}

	workingClub := *club
	workingComp := *comp
	if err := fn(&workingClub, &workingComp); err != nil {
		return err
	}

	if workingClub.Points < 0 || workingComp.NumberOfPlaces < 0 {
		return fmt.Errorf("transaction left negative balance: points=%d places=%d",
			workingClub.Points, workingComp.NumberOfPlaces)
	}

	*club = workingClub
	*comp = workingComp
	return nil
}
