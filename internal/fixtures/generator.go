package fixtures

import (
	"fmt"
	"time"

	"gudlft/pkg/model"

	"github.com/brianvoe/gofakeit/v7"
)

// Generator produces reproducible fake clubs and competitions.
type Generator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewGenerator creates a generator. Without a seed the current time is used.
func NewGenerator(seed ...int64) *Generator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &Generator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

func (g *Generator) Seed() int64 {
	return g.seed
}

// Clubs returns count clubs with unique names and emails.
func (g *Generator) Clubs(count, minPoints, maxPoints int) []model.Club {
	clubs := make([]model.Club, count)
	for i := range clubs {
		clubs[i] = model.Club{
			Name:   fmt.Sprintf("%s %d", g.faker.Company(), i),
			Email:  fmt.Sprintf("club%d.%s", i, g.faker.Email()),
			Points: g.faker.Number(minPoints, maxPoints),
		}
	}
	return clubs
}

// Competitions returns count competitions dated between from and to, in
// from's location.
func (g *Generator) Competitions(count, minPlaces, maxPlaces int, from, to time.Time) []model.Competition {
	comps := make([]model.Competition, count)
	for i := range comps {
		comps[i] = model.Competition{
			Name:           fmt.Sprintf("%s Open %d", g.faker.City(), i),
			Date:           g.faker.DateRange(from, to).In(from.Location()).Truncate(time.Second),
			NumberOfPlaces: g.faker.Number(minPlaces, maxPlaces),
		}
	}
	return comps
}

// Places returns a places count in [1, max].
func (g *Generator) Places(max int) int {
	return g.faker.Number(1, max)
}
