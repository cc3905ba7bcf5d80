package fixtures

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEncode_ReadsBack(t *testing.T) {
	gen := NewGenerator(11)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clubs := gen.Clubs(20, 0, 40)
	comps := gen.Competitions(10, 0, 60, from, from.AddDate(1, 0, 0))

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			loader := newTestLoader()

			var clubsBuf, compsBuf bytes.Buffer
			if err := EncodeClubs(&clubsBuf, clubs, format); err != nil {
				t.Fatalf("EncodeClubs() error = %v", err)
			}
			if err := EncodeCompetitions(&compsBuf, comps, format); err != nil {
				t.Fatalf("EncodeCompetitions() error = %v", err)
			}

			gotClubs, err := loader.DecodeClubs(&clubsBuf, format)
			if err != nil {
				t.Fatalf("DecodeClubs() error = %v", err)
			}
			gotComps, err := loader.DecodeCompetitions(&compsBuf, format)
			if err != nil {
				t.Fatalf("DecodeCompetitions() error = %v", err)
			}

			if diff := cmp.Diff(clubs, gotClubs); diff != "" {
				t.Errorf("clubs mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(comps, gotComps); diff != "" {
				t.Errorf("competitions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeClubs_PointsAsText(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeClubs(&buf, wantClubs[:1], FormatJSON); err != nil {
		t.Fatalf("EncodeClubs() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"points": "13"`) {
		t.Errorf("expected points written as text, got:\n%s", buf.String())
	}
}
