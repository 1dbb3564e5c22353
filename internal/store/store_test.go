package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap(t *testing.T) {
	if Wrap("insert", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	cause := errors.New("disk full")
	err := Wrap("insert", cause)
	if !IsStorageError(err) {
		t.Fatalf("got %T, want *StorageError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if got, want := err.Error(), "store insert: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// already wrapped errors keep their first op
	again := Wrap("list", fmt.Errorf("reload: %w", err))
	var se *StorageError
	if !errors.As(again, &se) || se.Op != "insert" {
		t.Errorf("rewrapped op = %+v, want insert", se)
	}
}

func TestIsStorageError(t *testing.T) {
	if IsStorageError(errors.New("plain")) {
		t.Error("plain error reported as storage error")
	}
	if IsStorageError(nil) {
		t.Error("nil reported as storage error")
	}
}
