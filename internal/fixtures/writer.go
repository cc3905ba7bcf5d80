package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gudlft/pkg/model"

	"gopkg.in/yaml.v3"
)

// EncodeClubs writes clubs in the fixture file shape, with points as text.
func EncodeClubs(w io.Writer, clubs []model.Club, format Format) error {
	file := clubsFile{Clubs: make([]rawClub, len(clubs))}
	for i, club := range clubs {
		file.Clubs[i] = rawClub{
			Name:   club.Name,
			Email:  club.Email,
			Points: scalarText(strconv.Itoa(club.Points)),
		}
	}
	return encode(w, format, file)
}

// EncodeCompetitions writes competitions using the first of DateLayouts.
func EncodeCompetitions(w io.Writer, comps []model.Competition, format Format) error {
	file := competitionsFile{Competitions: make([]rawCompetition, len(comps))}
	for i, comp := range comps {
		file.Competitions[i] = rawCompetition{
			Name:           comp.Name,
			Date:           scalarText(comp.Date.Format(DateLayouts[0])),
			NumberOfPlaces: scalarText(strconv.Itoa(comp.NumberOfPlaces)),
		}
	}
	return encode(w, format, file)
}

func encode(w io.Writer, format Format, src any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(src); err != nil {
			return fmt.Errorf("encode yaml fixture: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		if err := enc.Encode(src); err != nil {
			return fmt.Errorf("encode json fixture: %w", err)
		}
		return nil
	}
}
