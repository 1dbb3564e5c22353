// Package sqlitestore keeps tasks in a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// AUTOINCREMENT keeps ids from being reused, even after DELETE FROM tasks.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	description  TEXT    NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0
);`

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store handles SQLite operations for tasks.
type Store struct {
	db *sql.DB
}

var _ store.Repository = (*Store)(nil)

// Open creates the database file (and its directory) if needed and applies the schema.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, store.Wrap("open", fmt.Errorf("home: %w", err))
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, store.Wrap("open", fmt.Errorf("create database directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, store.Wrap("open", fmt.Errorf("open database: %w", err))
	}
	// One connection: the store serializes its own operations, and an
	// in-memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, store.Wrap("open", fmt.Errorf("initialize schema: %w", err))
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return store.Wrap("close", s.db.Close())
}

func (s *Store) ListAll(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, is_completed FROM tasks ORDER BY id`)
	if err != nil {
		return nil, store.Wrap("list", fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.IsCompleted); err != nil {
			return nil, store.Wrap("list", fmt.Errorf("scan: %w", err))
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list", fmt.Errorf("rows: %w", err))
	}
	return tasks, nil
}

func (s *Store) Insert(ctx context.Context, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (description, is_completed) VALUES (?, 0)`, description)
	if err != nil {
		return store.Wrap("insert", err)
	}
	return nil
}

// Update replaces the record with task.ID. Zero affected rows is not an error.
func (s *Store) Update(ctx context.Context, task model.Task) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET description = ?, is_completed = ? WHERE id = ?`,
		task.Description, task.IsCompleted, task.ID)
	if err != nil {
		return store.Wrap("update", err)
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return store.Wrap("delete", err)
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return store.Wrap("delete all", err)
	}
	return nil
}
