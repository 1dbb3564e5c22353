// Package storetest holds the repository contract suite run against every backend.
package storetest

import (
	"context"
	"slices"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// Factory returns a fresh, empty repository. Cleanup is the factory's job.
type Factory func(t *testing.T) store.Repository

// Run exercises the Repository contract.
func Run(t *testing.T, newRepo Factory) {
	t.Run("insert then list returns every description", func(t *testing.T) {
		testRoundTrip(t, newRepo(t))
	})
	t.Run("update replaces the record", func(t *testing.T) {
		testUpdate(t, newRepo(t))
	})
	t.Run("update of a missing id is a no-op", func(t *testing.T) {
		testUpdateMissing(t, newRepo(t))
	})
	t.Run("delete by id", func(t *testing.T) {
		testDeleteByID(t, newRepo(t))
	})
	t.Run("delete all empties the store and keeps ids unique", func(t *testing.T) {
		testDeleteAll(t, newRepo(t))
	})
	t.Run("closed store reports storage errors", func(t *testing.T) {
		testClosed(t, newRepo(t))
	})
}

// MustList fails the test if ListAll errors.
func MustList(t *testing.T, r store.Repository) []model.Task {
	t.Helper()
	tasks, err := r.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	return tasks
}

// MustInsert fails the test if any Insert errors.
func MustInsert(t *testing.T, r store.Repository, descriptions ...string) {
	t.Helper()
	for _, d := range descriptions {
		if err := r.Insert(context.Background(), d); err != nil {
			t.Fatalf("Insert(%q): %v", d, err)
		}
	}
}

func testRoundTrip(t *testing.T, r store.Repository) {
	in := []string{"Buy milk", "Walk dog", "", "Buy milk"}
	MustInsert(t, r, in...)

	tasks := MustList(t, r)
	if len(tasks) != len(in) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(in))
	}
	var got []string
	seen := map[int64]bool{}
	for _, task := range tasks {
		if seen[task.ID] {
			t.Errorf("duplicate id %d", task.ID)
		}
		seen[task.ID] = true
		if task.IsCompleted {
			t.Errorf("task %d: new task is completed", task.ID)
		}
		got = append(got, task.Description)
	}
	slices.Sort(got)
	want := slices.Clone(in)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("descriptions = %q, want %q", got, want)
	}
}

func testUpdate(t *testing.T, r store.Repository) {
	MustInsert(t, r, "Buy milk", "Walk dog")
	tasks := MustList(t, r)

	edited := tasks[0]
	edited.Description = "Buy oat milk"
	edited.IsCompleted = true
	if err := r.Update(context.Background(), edited); err != nil {
		t.Fatalf("Update: %v", err)
	}

	after := MustList(t, r)
	i := slices.IndexFunc(after, func(x model.Task) bool { return x.ID == edited.ID })
	if i < 0 {
		t.Fatalf("task %d missing after update", edited.ID)
	}
	if after[i] != edited {
		t.Errorf("after update = %+v, want %+v", after[i], edited)
	}
	j := slices.IndexFunc(after, func(x model.Task) bool { return x.ID == tasks[1].ID })
	if j < 0 || after[j] != tasks[1] {
		t.Errorf("untouched task changed: %+v", after)
	}
}

func testUpdateMissing(t *testing.T, r store.Repository) {
	MustInsert(t, r, "Buy milk")
	before := MustList(t, r)

	ghost := model.Task{ID: before[0].ID + 1000, Description: "ghost", IsCompleted: true}
	if err := r.Update(context.Background(), ghost); err != nil {
		t.Fatalf("Update of missing id returned %v, want nil", err)
	}
	if after := MustList(t, r); !slices.Equal(after, before) {
		t.Errorf("store changed: got %+v, want %+v", after, before)
	}
}

func testDeleteByID(t *testing.T, r store.Repository) {
	MustInsert(t, r, "a", "b", "c")
	tasks := MustList(t, r)

	if err := r.DeleteByID(context.Background(), tasks[1].ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := r.DeleteByID(context.Background(), tasks[1].ID); err != nil {
		t.Fatalf("DeleteByID of absent id: %v", err)
	}
	after := MustList(t, r)
	if len(after) != 2 {
		t.Fatalf("got %d tasks, want 2", len(after))
	}
	for _, task := range after {
		if task.ID == tasks[1].ID {
			t.Errorf("deleted task %d still present", task.ID)
		}
	}
}

func testDeleteAll(t *testing.T, r store.Repository) {
	MustInsert(t, r, "a", "b", "c")
	before := MustList(t, r)
	var maxID int64
	for _, task := range before {
		maxID = max(maxID, task.ID)
	}

	if err := r.DeleteAll(context.Background()); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if got := MustList(t, r); len(got) != 0 {
		t.Fatalf("after DeleteAll got %+v, want empty", got)
	}

	MustInsert(t, r, "d")
	after := MustList(t, r)
	if len(after) != 1 {
		t.Fatalf("got %d tasks, want 1", len(after))
	}
	if after[0].ID <= maxID {
		t.Errorf("id %d reused (previous max %d)", after[0].ID, maxID)
	}
}

func testClosed(t *testing.T, r store.Repository) {
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	ctx := context.Background()
	checks := map[string]error{
		"Insert":     r.Insert(ctx, "x"),
		"Update":     r.Update(ctx, model.Task{ID: 1}),
		"DeleteByID": r.DeleteByID(ctx, 1),
		"DeleteAll":  r.DeleteAll(ctx),
	}
	_, err := r.ListAll(ctx)
	checks["ListAll"] = err
	for op, err := range checks {
		if !store.IsStorageError(err) {
			t.Errorf("%s after Close: got %v, want a storage error", op, err)
		}
	}
}
