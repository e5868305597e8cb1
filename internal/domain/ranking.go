package domain

import (
	"slices"
	"strings"
)

// SortMode selects the display ordering of merged rows.
type SortMode string

const (
	// SortHot orders by vote count descending. Equal counts order
	// newest-first, then by question ID, so the result is deterministic.
	SortHot SortMode = "HOT"
	// SortNew orders by creation time descending.
	SortNew SortMode = "NEW"
)

func (m SortMode) String() string { return string(m) }

func (m SortMode) IsValid() bool {
	switch m {
	case SortHot, SortNew:
		return true
	}
	return false
}

// ParseSortMode maps a user-facing mode name ("hot", "new") to a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HOT":
		return SortHot, nil
	case "NEW":
		return SortNew, nil
	}
	return "", NewValidationError("sort", "must be hot or new")
}

// Rank returns rows sorted for display under the given mode. It is a pure
// projection: the input slice is not modified, and rows are not copied
// deeply (callers must not mutate through the result).
func Rank(rows []MergedRow, mode SortMode) []MergedRow {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b MergedRow) int {
		if mode == SortHot {
			if c := b.Question.VoteCount - a.Question.VoteCount; c != 0 {
				return c
			}
		}
		if c := b.Question.CreatedAt.Compare(a.Question.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Question.ID.String(), b.Question.ID.String())
	})
	return out
}
