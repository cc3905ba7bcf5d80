// Package fixtures reads the club and competition files the portal serves
// from. Text fields are parsed into typed records once, here.
package fixtures

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gudlft/pkg/logger"
	"gudlft/pkg/model"
	"gudlft/pkg/sanitizer"

	"gopkg.in/yaml.v3"
)

var ErrInvalidFixture = errors.New("invalid fixture")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DateLayouts are tried in order when parsing competition dates.
var DateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

type RecordValidator interface {
	ValidateClub(club *model.Club) error
	ValidateCompetition(comp *model.Competition) error
}

// Fixtures is the full data set loaded at startup.
type Fixtures struct {
	Clubs        []model.Club
	Competitions []model.Competition
}

type Loader struct {
	log       *logger.Logger
	validator RecordValidator
	location  *time.Location
}

type Option func(*Loader)

// WithLocation sets the location zoneless fixture dates are read in.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) {
		l.location = loc
	}
}

func NewLoader(log *logger.Logger, validator RecordValidator, opts ...Option) *Loader {
	l := &Loader{
		log:       log,
		validator: validator,
		location:  time.UTC,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Load(clubsPath, competitionsPath string) (*Fixtures, error) {
	clubs, err := l.LoadClubs(clubsPath)
	if err != nil {
		return nil, err
	}

	competitions, err := l.LoadCompetitions(competitionsPath)
	if err != nil {
		return nil, err
	}

	l.log.Info("Fixtures loaded",
		"clubs", len(clubs),
		"competitions", len(competitions),
	)
	return &Fixtures{Clubs: clubs, Competitions: competitions}, nil
}

func (l *Loader) LoadClubs(path string) ([]model.Club, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clubs file: %w", err)
	}
	defer f.Close()

	clubs, err := l.DecodeClubs(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clubs, nil
}

func (l *Loader) LoadCompetitions(path string) ([]model.Competition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open competitions file: %w", err)
	}
	defer f.Close()

	comps, err := l.DecodeCompetitions(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return comps, nil
}

func (l *Loader) DecodeClubs(r io.Reader, format Format) ([]model.Club, error) {
	var file clubsFile
	if err := decode(r, format, &file); err != nil {
		return nil, err
	}

	clubs := make([]model.Club, 0, len(file.Clubs))
	for i, raw := range file.Clubs {
		points, err := sanitizer.ParseWholeNumber(string(raw.Points))
		if err != nil {
			return nil, fmt.Errorf("%w: clubs[%d] points %q is not a whole number", ErrInvalidFixture, i, raw.Points)
		}

		club := model.Club{
			Name:   raw.Name,
			Email:  raw.Email,
			Points: points,
		}
		if l.validator != nil {
			if err := l.validator.ValidateClub(&club); err != nil {
				return nil, fmt.Errorf("%w: clubs[%d]: %v", ErrInvalidFixture, i, err)
			}
		}
		clubs = append(clubs, club)
	}
	return clubs, nil
}

func (l *Loader) DecodeCompetitions(r io.Reader, format Format) ([]model.Competition, error) {
	var file competitionsFile
	if err := decode(r, format, &file); err != nil {
		return nil, err
	}

	comps := make([]model.Competition, 0, len(file.Competitions))
	for i, raw := range file.Competitions {
		date, err := l.parseDate(string(raw.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: competitions[%d] date %q: %v", ErrInvalidFixture, i, raw.Date, err)
		}

		places, err := sanitizer.ParseWholeNumber(string(raw.NumberOfPlaces))
		if err != nil {
			return nil, fmt.Errorf("%w: competitions[%d] numberOfPlaces %q is not a whole number", ErrInvalidFixture, i, raw.NumberOfPlaces)
		}

		comp := model.Competition{
			Name:           raw.Name,
			Date:           date,
			NumberOfPlaces: places,
		}
		if l.validator != nil {
			if err := l.validator.ValidateCompetition(&comp); err != nil {
				return nil, fmt.Errorf("%w: competitions[%d]: %v", ErrInvalidFixture, i, err)
			}
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

func (l *Loader) parseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, text, l.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected one of %s", strings.Join(DateLayouts, ", "))
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decode(r io.Reader, format Format, dst any) error {
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
		}
	default:
		if err := json.NewDecoder(r).Decode(dst); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFixture, err)
		}
	}
	return nil
}
