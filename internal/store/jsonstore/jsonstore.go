package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// The whole file is read and rewritten on every operation; fine for a
// local single-user list.

// DataFileName is the default file name inside the data directory.
const DataFileName = "tasks.json"

// file is the on-disk layout. NextID survives deletes so ids are never reused.
type file struct {
	NextID int64        `json:"next_id"`
	Tasks  []model.Task `json:"tasks"`
}

type Store struct {
	mu     sync.Mutex
	path   string
	closed bool
}

var _ store.Repository = (*Store)(nil)

// Open returns a store backed by path. The file is created on first write.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, store.Wrap("open", fmt.Errorf("mkdir: %w", err))
	}
	return &Store{path: path}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) load() (file, error) {
	f := file{NextID: 1}
	if s.closed {
		return f, store.ErrClosed
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read file: %w", err)
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("json unmarshal: %w", err)
	}
	if f.NextID < 1 {
		f.NextID = 1
	}
	return f, nil
}

func (s *Store) save(f file) error {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// mutate runs fn over the loaded file and saves the result.
func (s *Store) mutate(ctx context.Context, op string, fn func(*file)) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(op, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return store.Wrap(op, err)
	}
	fn(&f)
	return store.Wrap(op, s.save(f))
}

func (s *Store) ListAll(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("list", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, store.Wrap("list", err)
	}
	if f.Tasks == nil {
		return []model.Task{}, nil
	}
	return f.Tasks, nil
}

func (s *Store) Insert(ctx context.Context, description string) error {
	return s.mutate(ctx, "insert", func(f *file) {
		f.Tasks = append(f.Tasks, model.Task{ID: f.NextID, Description: description})
		f.NextID++
	})
}

func (s *Store) Update(ctx context.Context, task model.Task) error {
	return s.mutate(ctx, "update", func(f *file) {
		for i := range f.Tasks {
			if f.Tasks[i].ID == task.ID {
				f.Tasks[i] = task
				return
			}
		}
	})
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete", func(f *file) {
		for i := range f.Tasks {
			if f.Tasks[i].ID == id {
				f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
				return
			}
		}
	})
}

func (s *Store) DeleteAll(ctx context.Context) error {
	return s.mutate(ctx, "delete all", func(f *file) {
		f.Tasks = []model.Task{}
	})
}
