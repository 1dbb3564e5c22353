package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Repository {
		s, err := Open(filepath.Join(t.TempDir(), DataFileName))
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		return s
	})
}

func TestMissingFileListsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "data", DataFileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := storetest.MustList(t, s); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), DataFileName)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	storetest.MustInsert(t, s, "Buy milk")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{`"next_id": 2`, `"description": "Buy milk"`, `"is_completed": false`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("file missing %s:\n%s", want, b)
		}
	}
}

func TestCorruptFileIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DataFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.ListAll(context.Background()); !store.IsStorageError(err) {
		t.Errorf("ListAll: got %v, want a storage error", err)
	}
	if err := s.Insert(context.Background(), "x"); !store.IsStorageError(err) {
		t.Errorf("Insert: got %v, want a storage error", err)
	}
}
