package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scalarText accepts a fixture scalar written either as text or as a bare
// number and keeps its textual form.
type scalarText string

func (s *scalarText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = scalarText(text)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected text or number, got %s", data)
	}
	*s = scalarText(n.String())
	return nil
}

func (s *scalarText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = scalarText(node.Value)
	return nil
}

type rawClub struct {
	Name   string     `json:"name" yaml:"name"`
	Email  string     `json:"email" yaml:"email"`
	Points scalarText `json:"points" yaml:"points"`
}

type rawCompetition struct {
	Name           string     `json:"name" yaml:"name"`
	Date           scalarText `json:"date" yaml:"date"`
	NumberOfPlaces scalarText `json:"numberOfPlaces" yaml:"numberOfPlaces"`
}

type clubsFile struct {
	Clubs []rawClub `json:"clubs" yaml:"clubs"`
}

type competitionsFile struct {
	Competitions []rawCompetition `json:"competitions" yaml:"competitions"`
}
