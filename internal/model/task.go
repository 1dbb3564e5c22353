package model

import (
	"fmt"
	"strings"
)

// Task is the domain model for a task entry.
// ID is assigned by the store and never reused.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// Toggled returns a copy with the completion flag negated.
func (t Task) Toggled() Task {
	t.IsCompleted = !t.IsCompleted
	return t
}

// SortOption selects the key the projection sorts by.
type SortOption int

const (
	SortByName SortOption = iota
	SortByStatus
	// SortByID orders by store-assigned id. Tasks carry no creation time,
	// so id order is the only insertion-like order available.
	SortByID
)

var sortNames = map[SortOption]string{
	SortByName:   "name",
	SortByStatus: "status",
	SortByID:     "id",
}

func (s SortOption) String() string {
	if n, ok := sortNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SortOption(%d)", int(s))
}

// Next cycles name -> status -> id -> name.
func (s SortOption) Next() SortOption {
	return (s + 1) % SortOption(len(sortNames))
}

// ParseSortOption accepts "name", "status" or "id" (case-insensitive).
func ParseSortOption(s string) (SortOption, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for opt, name := range sortNames {
		if name == want {
			return opt, nil
		}
	}
	return SortByName, fmt.Errorf("unknown sort option %q (want name, status or id)", s)
}
