package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Repository { return New() })
}

func TestSeed(t *testing.T) {
	s := New("Tarea 1", "Tarea 2")
	tasks := storetest.MustList(t, s)
	if len(tasks) != 2 || tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Fatalf("seeded tasks = %+v", tasks)
	}
	storetest.MustInsert(t, s, "Tarea 3")
	if got := storetest.MustList(t, s)[2].ID; got != 3 {
		t.Errorf("next id = %d, want 3", got)
	}
}

func TestFailWith(t *testing.T) {
	s := New("a")
	boom := errors.New("disk on fire")
	s.FailWith(boom)

	_, err := s.ListAll(context.Background())
	if !store.IsStorageError(err) || !errors.Is(err, boom) {
		t.Fatalf("got %v, want storage error wrapping %v", err, boom)
	}

	s.FailWith(nil)
	if got := storetest.MustList(t, s); len(got) != 1 {
		t.Errorf("after recovery got %+v", got)
	}
}
