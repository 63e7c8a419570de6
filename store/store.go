// Package store persists named templates in a local SQLite library so
// frequently used templates can be referenced by name instead of file path.
// Saving an existing name creates a new version; lookups return the latest.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/teranos/promptforge/errors"
	"github.com/teranos/promptforge/value"
)

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	body        TEXT NOT NULL,
	placeholder TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	version     INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_templates_name ON templates(name, version);
`

// Template is one stored version of a named template.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Body        string    `json:"body"` // template document as JSON text
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

// Parse returns the template body as a value tree.
func (t *Template) Parse() (value.Value, error) {
	v, err := value.DecodeJSON([]byte(t.Body))
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "stored template %s (version %d) is corrupt", t.Name, t.Version)
	}
	return v, nil
}

// Store is a SQLite-backed template library.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the library database at path.
// Use ":memory:" for an ephemeral library in tests.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, errors.Wrapf(err, "failed to create library directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open library database %s", path)
	}

	// Busy timeout covers concurrent CLI invocations against one library file.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize library schema")
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a template. The body must parse as a JSON document. If a
// template with the same name exists, the new row gets the next version
// number; earlier versions are retained.
func (s *Store) Save(ctx context.Context, t *Template) (*Template, error) {
	if t.Name == "" {
		return nil, errors.NewInvalidRequestError("template name is required")
	}
	if t.Body == "" {
		return nil, errors.NewInvalidRequestError("template body is required")
	}
	if _, err := value.DecodeJSON([]byte(t.Body)); err != nil {
		return nil, errors.Wrap(err, "template body is not valid JSON")
	}

	version := 1
	existing, err := s.GetByName(ctx, t.Name)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}
	if existing != nil {
		version = existing.Version + 1
	}

	saved := &Template{
		ID:          uuid.NewString(),
		Name:        t.Name,
		Body:        t.Body,
		Placeholder: t.Placeholder,
		Description: t.Description,
		Version:     version,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates (id, name, body, placeholder, description, version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.Name, saved.Body, saved.Placeholder, saved.Description, saved.Version, saved.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store template %s", t.Name)
	}
	return saved, nil
}

// GetByName returns the latest version of a named template, or a not-found
// error when no version exists.
func (s *Store) GetByName(ctx context.Context, name string) (*Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, body, placeholder, description, version, created_at
		 FROM templates WHERE name = ? ORDER BY version DESC LIMIT 1`, name)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("template '%s' is not in the library", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load template %s", name)
	}
	return t, nil
}

// List returns the latest version of every template, most recently updated
// first. limit <= 0 applies a sane default.
func (s *Store) List(ctx context.Context, limit int) ([]*Template, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, body, placeholder, description, version, created_at
		 FROM templates t
		 WHERE version = (SELECT MAX(version) FROM templates WHERE name = t.name)
		 ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list templates")
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// Versions returns all stored versions of a named template, newest first.
func (s *Store) Versions(ctx context.Context, name string, limit int) ([]*Template, error) {
	if limit <= 0 {
		limit = 16
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, body, placeholder, description, version, created_at
		 FROM templates WHERE name = ? ORDER BY version DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list versions of %s", name)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// Delete removes every version of a named template. Deleting an unknown name
// is a not-found error.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE name = ?`, name)
	if err != nil {
		return errors.Wrapf(err, "failed to delete template %s", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to check delete result")
	}
	if n == 0 {
		return errors.NewNotFoundError("template '%s' is not in the library", name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*Template, error) {
	var t Template
	if err := row.Scan(&t.ID, &t.Name, &t.Body, &t.Placeholder, &t.Description, &t.Version, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTemplates(rows *sql.Rows) ([]*Template, error) {
	var out []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan template row")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate template rows")
	}
	return out, nil
}
