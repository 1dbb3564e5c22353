// Package memstore is an in-process task store, used for previews and tests.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

type Store struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int64
	fail   error
	closed bool
}

var _ store.Repository = (*Store)(nil)

// New returns a store seeded with descriptions, ids starting at 1.
func New(seed ...string) *Store {
	s := &Store{nextID: 1}
	for _, d := range seed {
		s.tasks = append(s.tasks, model.Task{ID: s.nextID, Description: d})
		s.nextID++
	}
	return s
}

// FailWith makes every following operation return err wrapped as a
// storage error. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(op, err)
	}
	if s.closed {
		return store.Wrap(op, store.ErrClosed)
	}
	return store.Wrap(op, s.fail)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "list"); err != nil {
		return nil, err
	}
	out := slices.Clone(s.tasks)
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "insert"); err != nil {
		return err
	}
	s.tasks = append(s.tasks, model.Task{ID: s.nextID, Description: description})
	s.nextID++
	return nil
}

func (s *Store) Update(ctx context.Context, task model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "update"); err != nil {
		return err
	}
	if i := s.index(task.ID); i >= 0 {
		s.tasks[i] = task
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "delete"); err != nil {
		return err
	}
	if i := s.index(id); i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "delete all"); err != nil {
		return err
	}
	s.tasks = nil
	return nil
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}
