// Package engine holds the booking rules of the portal: entity lookups, the
// competition date gate and the place-purchase transaction. Everything here
// is pure; callers own locking and the clock.
package engine

import "gudlft/pkg/model"

// FindClubByEmail returns the first club whose email matches exactly.
// The returned pointer aliases the slice element.
func FindClubByEmail(clubs []model.Club, email string) (*model.Club, bool) {
	return findFirst(clubs, func(c *model.Club) bool { return c.Email == email })
}

func FindClubByName(clubs []model.Club, name string) (*model.Club, bool) {
	return findFirst(clubs, func(c *model.Club) bool { return c.Name == name })
}

func FindCompetitionByName(competitions []model.Competition, name string) (*model.Competition, bool) {
	return findFirst(competitions, func(c *model.Competition) bool { return c.Name == name })
}

func findFirst[T any](items []T, match func(*T) bool) (*T, bool) {
	for i := range items {
		if match(&items[i]) {
			return &items[i], true
		}
	}
	return nil, false
}
