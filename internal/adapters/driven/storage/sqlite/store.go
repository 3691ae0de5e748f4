// Package sqlite implements the record store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/taskpull-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/taskpull-cli/internal/core/domain"
	"github.com/custodia-labs/taskpull-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is a SQLite-backed record store. Records are keyed by (url, type);
// upserts keep the original row ID.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store under the given data directory.
// If dataDir is empty, defaults to ~/.taskpull/data/records.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".taskpull", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "records.db")

	// WAL keeps concurrent readers cheap
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate applies every embedded migration file in lexical order.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return err
	}

	entries, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, name := range entries {
		var applied int
		err := s.db.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE name = ?`, name).Scan(&applied)
		if err != nil {
			return err
		}
		if applied > 0 {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC(),
		); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Upsert inserts the record or merges it over the row sharing its
// (url, type) key, keeping the existing ID.
func (s *Store) Upsert(ctx context.Context, rec *domain.TaskRecord) error {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	annotations, err := json.Marshal(rec.Annotations)
	if err != nil {
		return fmt.Errorf("encode annotations: %w", err)
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (
			id, url, type, project, priority, description, title, body,
			repo, number, author, milestone, tags, annotations,
			created_at, updated_at, imported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url, type) DO UPDATE SET
			project = excluded.project,
			priority = excluded.priority,
			description = excluded.description,
			title = excluded.title,
			body = excluded.body,
			repo = excluded.repo,
			number = excluded.number,
			author = excluded.author,
			milestone = excluded.milestone,
			tags = excluded.tags,
			annotations = excluded.annotations,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			imported_at = excluded.imported_at`,
		rec.ID, rec.URL, rec.Type, rec.Project, rec.Priority, rec.Description,
		rec.Title, rec.Body, rec.Repo, rec.Number, rec.Author, rec.Milestone,
		string(tags), string(annotations),
		rec.CreatedAt.UTC(), rec.UpdatedAt.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	// A conflicting insert keeps the stored ID; read it back so the caller
	// sees the canonical one.
	var id string
	if err := s.db.QueryRowContext(ctx,
		`SELECT id FROM records WHERE url = ? AND type = ?`, rec.URL, rec.Type,
	).Scan(&id); err != nil {
		return fmt.Errorf("read back record id: %w", err)
	}
	rec.ID = id

	return nil
}

// Get retrieves a record by its (url, type) key.
func (s *Store) Get(ctx context.Context, url, recordType string) (*domain.TaskRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, type, project, priority, description, title, body,
		       repo, number, author, milestone, tags, annotations,
		       created_at, updated_at
		FROM records WHERE url = ? AND type = ?`, url, recordType)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List returns all records ordered by repo, then number.
func (s *Store) List(ctx context.Context) ([]domain.TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, type, project, priority, description, title, body,
		       repo, number, author, milestone, tags, annotations,
		       created_at, updated_at
		FROM records ORDER BY repo, number`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []domain.TaskRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return records, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.TaskRecord, error) {
	var rec domain.TaskRecord
	var tags, annotations string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rec.ID, &rec.URL, &rec.Type, &rec.Project, &rec.Priority,
		&rec.Description, &rec.Title, &rec.Body, &rec.Repo, &rec.Number,
		&rec.Author, &rec.Milestone, &tags, &annotations,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal([]byte(annotations), &rec.Annotations); err != nil {
		return nil, fmt.Errorf("decode annotations: %w", err)
	}
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}

	return &rec, nil
}
