package fixtures

import (
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"gudlft/internal/bookings/engine"
	"gudlft/internal/bookings/validator"
	"gudlft/pkg/logger"
	"gudlft/pkg/model"

	"github.com/google/go-cmp/cmp"
)

func newTestLoader(opts ...Option) *Loader {
	log := logger.Discard()
	return NewLoader(log, validator.NewBookingValidator(log), opts...)
}

var wantClubs = []model.Club{
	{Name: "Simply Lift", Email: "john@simplylift.co", Points: 13},
	{Name: "Iron Temple", Email: "admin@irontemple.com", Points: 4},
	{Name: "She Lifts", Email: "kate@shelifts.co.uk", Points: 12},
}

func TestLoad_JSON(t *testing.T) {
	loader := newTestLoader()

	got, err := loader.Load("testdata/clubs.json", "testdata/competitions.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Fixtures{
		Clubs: wantClubs,
		Competitions: []model.Competition{
			{Name: "Spring Festival", Date: time.Date(2020, 3, 27, 10, 0, 0, 0, time.UTC), NumberOfPlaces: 25},
			{Name: "Fall Classic", Date: time.Date(2020, 10, 22, 13, 30, 0, 0, time.UTC), NumberOfPlaces: 13},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	loader := newTestLoader()

	got, err := loader.Load("testdata/clubs.yaml", "testdata/competitions.yml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Fixtures{
		Clubs: wantClubs,
		Competitions: []model.Competition{
			{Name: "Spring Festival", Date: time.Date(2020, 3, 27, 10, 0, 0, 0, time.UTC), NumberOfPlaces: 25},
			{Name: "Fall Classic", Date: time.Date(2020, 10, 22, 0, 0, 0, 0, time.UTC), NumberOfPlaces: 13},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	loader := newTestLoader()

	if _, err := loader.Load("testdata/nope.json", "testdata/competitions.json"); err == nil {
		t.Fatal("expected error for missing clubs file")
	}
	if _, err := loader.Load("testdata/clubs.json", "testdata/nope.json"); err == nil {
		t.Fatal("expected error for missing competitions file")
	}
}

func TestDecodeCompetitions_Location(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)
	loader := newTestLoader(WithLocation(loc))

	comps, err := loader.DecodeCompetitions(strings.NewReader(
		`{"competitions":[{"name":"Local","date":"2026-05-01 09:00:00","numberOfPlaces":"5"}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeCompetitions() error = %v", err)
	}

	want := time.Date(2026, 5, 1, 9, 0, 0, 0, loc)
	if !comps[0].Date.Equal(want) || comps[0].Date.Location() != loc {
		t.Errorf("Date = %v, want %v", comps[0].Date, want)
	}
}

func TestDecodeCompetitions_GateUsesLoaderLocation(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	// 01:00 UTC on the 28th.
	now := time.Date(2026, 3, 27, 21, 0, 0, 0, newYork)

	tests := []struct {
		name     string
		date     string
		loc      *time.Location
		bookable bool
	}{
		{name: "tomorrow in server zone", date: "2026-03-28 10:00:00", loc: newYork, bookable: true},
		{name: "today in server zone", date: "2026-03-27 23:00:00", loc: newYork, bookable: false},
		{name: "yesterday in server zone", date: "2026-03-26", loc: newYork, bookable: false},
		{name: "tomorrow read as UTC is already today", date: "2026-03-28 10:00:00", loc: time.UTC, bookable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newTestLoader(WithLocation(tt.loc))
			comps, err := loader.DecodeCompetitions(strings.NewReader(
				`{"competitions":[{"name":"Spring","date":"`+tt.date+`","numberOfPlaces":"5"}]}`), FormatJSON)
			if err != nil {
				t.Fatalf("DecodeCompetitions() error = %v", err)
			}

			if got := engine.IsBookable(comps[0], now); got != tt.bookable {
				t.Errorf("IsBookable(%s, %s) = %v, want %v", comps[0].Date, now, got, tt.bookable)
			}
		})
	}
}

func TestDecodeCompetitions_DateLayouts(t *testing.T) {
	loader := newTestLoader()

	tests := []struct {
		date string
		want time.Time
	}{
		{date: "2026-05-01 09:30:00", want: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)},
		{date: "2026-05-01", want: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{date: "2026-05-01T09:30:00Z", want: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			comps, err := loader.DecodeCompetitions(strings.NewReader(
				`{"competitions":[{"name":"X","date":"`+tt.date+`","numberOfPlaces":"1"}]}`), FormatJSON)
			if err != nil {
				t.Fatalf("DecodeCompetitions() error = %v", err)
			}
			if !comps[0].Date.Equal(tt.want) {
				t.Errorf("Date = %v, want %v", comps[0].Date, tt.want)
			}
		})
	}
}

func TestDecode_InvalidRecords(t *testing.T) {
	loader := newTestLoader()

	tests := []struct {
		name    string
		clubs   string
		comps   string
		wantMsg string
	}{
		{
			name:    "non numeric points",
			clubs:   `{"clubs":[{"name":"A","email":"a@b.co","points":"lots"}]}`,
			wantMsg: "clubs[0] points",
		},
		{
			name:    "negative points",
			clubs:   `{"clubs":[{"name":"A","email":"a@b.co","points":"-3"}]}`,
			wantMsg: "Points must be at least 0",
		},
		{
			name:    "missing email",
			clubs:   `{"clubs":[{"name":"A","points":"3"}]}`,
			wantMsg: "Email is required",
		},
		{
			name:    "malformed json",
			clubs:   `{"clubs":[`,
			wantMsg: "invalid fixture",
		},
		{
			name:    "bad date",
			comps:   `{"competitions":[{"name":"X","date":"27/03/2020","numberOfPlaces":"1"}]}`,
			wantMsg: "competitions[0] date",
		},
		{
			name:    "non numeric places",
			comps:   `{"competitions":[{"name":"X","date":"2020-03-27","numberOfPlaces":"many"}]}`,
			wantMsg: "competitions[0] numberOfPlaces",
		},
		{
			name:    "object instead of scalar",
			comps:   `{"competitions":[{"name":"X","date":"2020-03-27","numberOfPlaces":{"n":1}}]}`,
			wantMsg: "invalid fixture",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.clubs != "" {
				_, err = loader.DecodeClubs(strings.NewReader(tt.clubs), FormatJSON)
			} else {
				_, err = loader.DecodeCompetitions(strings.NewReader(tt.comps), FormatJSON)
			}
			if !errors.Is(err, ErrInvalidFixture) {
				t.Fatalf("expected ErrInvalidFixture, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDecodeClubs_WithoutValidator(t *testing.T) {
	loader := NewLoader(logger.Discard(), nil)

	clubs, err := loader.DecodeClubs(strings.NewReader(`{"clubs":[{"name":"A","email":"not-an-email","points":7}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeClubs() error = %v", err)
	}
	if diff := cmp.Diff([]model.Club{{Name: "A", Email: "not-an-email", Points: 7}}, clubs); diff != "" {
		t.Errorf("DecodeClubs() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"clubs.json":     FormatJSON,
		"clubs.yaml":     FormatYAML,
		"dir/clubs.YML":  FormatYAML,
		"clubs":          FormatJSON,
		"clubs.json.bak": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestLint(t *testing.T) {
	f := &Fixtures{
		Clubs: []model.Club{
			{Name: "Simply Lift", Email: "john@simplylift.co"},
			{Name: "Simply Lift", Email: "other@simplylift.co"},
			{Name: "Iron  Temple", Email: "john@simplylift.co"},
		},
		Competitions: []model.Competition{
			{Name: "Spring Festival"},
			{Name: "Spring Festival "},
			{Name: "Spring Festival"},
		},
	}

	got := Lint(f)
	want := []Warning{
		{Record: "clubs[1]", Message: `name "Simply Lift" already used by clubs[0]`},
		{Record: "clubs[2]", Message: `email "john@simplylift.co" already used by clubs[0]`},
		{Record: "clubs[2]", Message: `name "Iron  Temple" has leading, trailing or repeated whitespace`},
		{Record: "competitions[1]", Message: `name "Spring Festival " has leading, trailing or repeated whitespace`},
		{Record: "competitions[2]", Message: `name "Spring Festival" already used by competitions[0]`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lint() mismatch (-want +got):\n%s", diff)
	}

	if warnings := Lint(&Fixtures{Clubs: wantClubs}); len(warnings) != 0 {
		t.Errorf("expected no warnings for reference clubs, got %v", warnings)
	}
}
