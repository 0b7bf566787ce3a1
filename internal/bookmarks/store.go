package bookmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"ladle/internal/recipes"
)

// Store persists bookmarked recipes in SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Saved is one bookmarked recipe row.
type Saved struct {
	ID        int64
	Recipe    recipes.Recipe
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	food_name TEXT NOT NULL UNIQUE,
	source TEXT NOT NULL,
	ingredients_json TEXT NOT NULL,
	steps_json TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open opens (creating if needed) the bookmark database at path. The store
// takes a file lock next to the database so concurrent ladle invocations do
// not interleave writes.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bookmark database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bookmark directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire bookmark lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("bookmark database %s is in use by another ladle process", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open bookmark database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("configure bookmark database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("initialize bookmark schema: %w", err)
	}

	return &Store{db: db, path: path, lock: lock}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database and its lock.
func (s *Store) Close() error {
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Add saves a recipe, replacing any existing bookmark with the same food name.
func (s *Store) Add(ctx context.Context, recipe recipes.Recipe) error {
	if strings.TrimSpace(recipe.FoodName) == "" {
		return errors.New("recipe has no food name to bookmark under")
	}
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}
	steps, err := json.Marshal(recipe.Steps)
	if err != nil {
		return fmt.Errorf("encode steps: %w", err)
	}

	// Re-saving refreshes created_at so the bookmark surfaces as most recent.
	query := `
INSERT INTO bookmarks (food_name, source, ingredients_json, steps_json, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(food_name) DO UPDATE SET
	source = excluded.source,
	ingredients_json = excluded.ingredients_json,
	steps_json = excluded.steps_json,
	created_at = excluded.created_at`
	return s.withBusyRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query,
			recipe.FoodName, string(recipe.Source), string(ingredients), string(steps),
			time.Now().UTC().Format(time.RFC3339Nano))
		return err
	})
}

// Remove deletes a bookmark by food name, reporting whether one existed.
func (s *Store) Remove(ctx context.Context, foodName string) (bool, error) {
	var affected int64
	err := s.withBusyRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE food_name = ?`, foodName)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("remove bookmark: %w", err)
	}
	return affected > 0, nil
}

// List returns all bookmarks, most recent first.
func (s *Store) List(ctx context.Context) ([]Saved, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, food_name, source, ingredients_json, steps_json, created_at
FROM bookmarks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var saved []Saved
	for rows.Next() {
		var (
			entry          Saved
			source         string
			ingredientsRaw string
			stepsRaw       string
			createdAt      string
		)
		if err := rows.Scan(&entry.ID, &entry.Recipe.FoodName, &source, &ingredientsRaw, &stepsRaw, &createdAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		entry.Recipe.Source = recipes.Source(source)
		if err := json.Unmarshal([]byte(ingredientsRaw), &entry.Recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients for %q: %w", entry.Recipe.FoodName, err)
		}
		if err := json.Unmarshal([]byte(stepsRaw), &entry.Recipe.Steps); err != nil {
			return nil, fmt.Errorf("decode steps for %q: %w", entry.Recipe.FoodName, err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = ts
		}
		saved = append(saved, entry)
	}
	return saved, rows.Err()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) withBusyRetry(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
