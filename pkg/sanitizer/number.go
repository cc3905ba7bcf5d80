package sanitizer

import (
	"errors"
	"strconv"
	"strings"
)

var ErrNotANumber = errors.New("not a whole number")

// ParseWholeNumber trims surrounding whitespace and parses base-10 text.
// Sign handling is left to strconv; range checks belong to the caller.
func ParseWholeNumber(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, ErrNotANumber
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}
