// Package store defines the task repository contract shared by every backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// Repository is the typed CRUD facade over a task store.
//
// Update and DeleteByID are no-ops when no record carries the given id.
// Every failure is reported as a *StorageError.
type Repository interface {
	ListAll(ctx context.Context) ([]model.Task, error)
	Insert(ctx context.Context, description string) error
	Update(ctx context.Context, task model.Task) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Close() error
}

// StorageError is returned when the underlying store cannot complete an operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err, otherwise a *StorageError for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err carries a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ErrClosed is wrapped by backends that are used after Close.
var ErrClosed = errors.New("store closed")
