package model

// Club is a member club spending points on competition places.
type Club struct {
	Name   string `json:"name" yaml:"name" validate:"required,max=100"`
	Email  string `json:"email" yaml:"email" validate:"required,email"`
	Points int    `json:"points" yaml:"points" validate:"min=0"`
}

// BoardEntry is one row of the public points board.
type BoardEntry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type SummaryRequest struct {
	Email string `json:"email" validate:"required"`
}

type Summary struct {
	Club         Club              `json:"club"`
	Competitions []CompetitionView `json:"competitions"`
}

// Board is the points board as seen by a signed-in club.
type Board struct {
	Club  Club         `json:"club"`
	Clubs []BoardEntry `json:"clubs"`
}
