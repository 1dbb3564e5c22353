package view

import (
	"slices"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
)

func ids(tasks []model.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

var sample = []model.Task{
	{ID: 1, Description: "B", IsCompleted: false},
	{ID: 2, Description: "A", IsCompleted: false},
	{ID: 3, Description: "A", IsCompleted: true},
	{ID: 4, Description: "Buy Milk", IsCompleted: true},
	{ID: 5, Description: "call mom", IsCompleted: false},
}

func TestProject(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []model.Task
		params  Params
		wantIDs []int64
	}{
		{
			name:    "Given both flags off When projecting Then result is empty",
			tasks:   sample,
			params:  Params{ShowCompleted: false, ShowPending: false},
			wantIDs: []int64{},
		},
		{
			name:    "Given both flags on When projecting Then every task passes",
			tasks:   sample,
			params:  Params{ShowCompleted: true, ShowPending: true, Sort: model.SortByID},
			wantIDs: []int64{1, 2, 3, 4, 5},
		},
		{
			name:    "Given completed only When projecting Then pending tasks are dropped",
			tasks:   sample,
			params:  Params{ShowCompleted: true, Sort: model.SortByID},
			wantIDs: []int64{3, 4},
		},
		{
			name:    "Given pending only When projecting Then completed tasks are dropped",
			tasks:   sample,
			params:  Params{ShowPending: true, Sort: model.SortByID},
			wantIDs: []int64{1, 2, 5},
		},
		{
			name:    "Given lowercase query When searching Then match ignores case",
			tasks:   sample,
			params:  Params{ShowCompleted: true, ShowPending: true, Query: "milk"},
			wantIDs: []int64{4},
		},
		{
			name:    "Given uppercase query When searching Then match ignores case",
			tasks:   sample,
			params:  Params{ShowCompleted: true, ShowPending: true, Query: "CALL"},
			wantIDs: []int64{5},
		},
		{
			name:    "Given unmatched query When searching Then result is empty",
			tasks:   sample,
			params:  Params{ShowCompleted: true, ShowPending: true, Query: "xyz"},
			wantIDs: []int64{},
		},
		{
			name:    "Given name sort When descriptions tie Then input order is kept",
			tasks:   sample[:3],
			params:  Params{ShowCompleted: true, ShowPending: true, Sort: model.SortByName},
			wantIDs: []int64{2, 3, 1},
		},
		{
			name:    "Given name sort Then comparison is case-sensitive",
			tasks:   sample,
			params:  Params{ShowCompleted: true, ShowPending: true, Sort: model.SortByName},
			wantIDs: []int64{2, 3, 1, 4, 5},
		},
		{
			name:    "Given status sort Then pending come first in input order",
			tasks:   sample,
			params:  Params{ShowCompleted: true, ShowPending: true, Sort: model.SortByStatus},
			wantIDs: []int64{1, 2, 5, 3, 4},
		},
		{
			name: "Given id sort Then ids ascend",
			tasks: []model.Task{
				{ID: 9, Description: "z"}, {ID: 2, Description: "y"}, {ID: 5, Description: "x"},
			},
			params:  Params{ShowCompleted: true, ShowPending: true, Sort: model.SortByID},
			wantIDs: []int64{2, 5, 9},
		},
		{
			name:    "Given empty source Then result is empty",
			tasks:   nil,
			params:  DefaultParams(),
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Project(tt.tasks, tt.params))
			if !slices.Equal(got, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestProjectDoesNotTouchInput(t *testing.T) {
	in := slices.Clone(sample)
	Project(in, Params{ShowCompleted: true, ShowPending: true, Sort: model.SortByName})
	if !slices.Equal(in, sample) {
		t.Errorf("input reordered: %+v", in)
	}
}

func TestCounts(t *testing.T) {
	done, pending := Counts(sample)
	if done != 2 || pending != 3 {
		t.Errorf("Counts = %d, %d; want 2, 3", done, pending)
	}
}
