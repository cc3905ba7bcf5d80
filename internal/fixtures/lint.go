package fixtures

import (
	"fmt"

	"gudlft/pkg/sanitizer"
)

// Warning is a fixture problem that does not stop the portal from starting
// but makes some records unreachable or surprising.
type Warning struct {
	Record  string `json:"record"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Record, w.Message)
}

// Lint reports duplicated lookup keys and names with stray whitespace.
// Lookups return the first match, so later duplicates can never be used.
func Lint(f *Fixtures) []Warning {
	var warnings []Warning

	seenNames := map[string]int{}
	seenEmails := map[string]int{}
	for i, club := range f.Clubs {
		record := fmt.Sprintf("clubs[%d]", i)
		if first, ok := seenNames[club.Name]; ok {
			warnings = append(warnings, Warning{record, fmt.Sprintf("name %q already used by clubs[%d]", club.Name, first)})
		} else {
			seenNames[club.Name] = i
		}
		if first, ok := seenEmails[club.Email]; ok {
			warnings = append(warnings, Warning{record, fmt.Sprintf("email %q already used by clubs[%d]", club.Email, first)})
		} else {
			seenEmails[club.Email] = i
		}
		if !sanitizer.IsNormalized(club.Name) {
			warnings = append(warnings, Warning{record, fmt.Sprintf("name %q has leading, trailing or repeated whitespace", club.Name)})
		}
	}

	seenComps := map[string]int{}
	for i, comp := range f.Competitions {
		record := fmt.Sprintf("competitions[%d]", i)
		if first, ok := seenComps[comp.Name]; ok {
			warnings = append(warnings, Warning{record, fmt.Sprintf("name %q already used by competitions[%d]", comp.Name, first)})
		} else {
			seenComps[comp.Name] = i
		}
		if !sanitizer.IsNormalized(comp.Name) {
			warnings = append(warnings, Warning{record, fmt.Sprintf("name %q has leading, trailing or repeated whitespace", comp.Name)})
		}
	}

	return warnings
}
