// Package view derives the displayed task list from the published one.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// Params are the user-chosen filter, search and sort settings.
type Params struct {
	ShowCompleted bool
	ShowPending   bool
	Query         string
	Sort          model.SortOption
}

// DefaultParams shows everything, sorted by name.
func DefaultParams() Params {
	return Params{ShowCompleted: true, ShowPending: true, Sort: model.SortByName}
}

// Project filters by status, then by case-insensitive substring, then
// stable-sorts. The input slice is not modified.
func Project(tasks []model.Task, p Params) []model.Task {
	q := strings.ToLower(p.Query)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !(p.ShowCompleted && t.IsCompleted) && !(p.ShowPending && !t.IsCompleted) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		out = append(out, t)
	}

	switch p.Sort {
	case model.SortByStatus:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return cmpBool(a.IsCompleted, b.IsCompleted)
		})
	case model.SortByID:
		slices.SortStableFunc(out, func(a, b model.Task) int { return cmp.Compare(a.ID, b.ID) })
	default:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return strings.Compare(a.Description, b.Description)
		})
	}
	return out
}

// false sorts before true
func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// Counts returns how many tasks are done and pending.
func Counts(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}
