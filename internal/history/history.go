// Package history persists completed analysis runs to a local SQLite
// database so past quotes can be reviewed and re-priced.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/piwi3910/laserquote/internal/model"
)

// Entry is one stored analysis run.
type Entry struct {
	BatchID    string
	Folder     string
	CreatedAt  time.Time
	GrandTotal float64
	PartCount  int
	Result     *model.BatchResult
}

// Store wraps the quote history database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id          TEXT PRIMARY KEY,
	folder      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	grand_total REAL NOT NULL,
	part_count  INTEGER NOT NULL,
	result      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches(created_at DESC);
`

// Open opens (or creates) the history database, sets recommended pragmas and
// applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBatch stores a full analysis result. The result is serialized as JSON
// alongside the indexed summary columns; saving the same batch twice
// replaces the earlier snapshot.
func (s *Store) SaveBatch(res *model.BatchResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal batch result: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO batches (id, folder, created_at, grand_total, part_count, result)
		VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.Folder, time.Now().UTC().Format(time.RFC3339),
		res.Totals.GrandTotal, len(res.Parts), string(payload))
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// Recent returns up to n stored runs, newest first, with the full result
// deserialized.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, folder, created_at, grand_total, part_count, result
		FROM batches ORDER BY created_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt, payload string
		if err := rows.Scan(&e.BatchID, &e.Folder, &createdAt, &e.GrandTotal, &e.PartCount, &payload); err != nil {
			return nil, fmt.Errorf("scan batch row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		var res model.BatchResult
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			return nil, fmt.Errorf("unmarshal batch %s: %w", e.BatchID, err)
		}
		e.Result = &res
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Load returns one stored run by batch id.
func (s *Store) Load(batchID string) (*model.BatchResult, error) {
	var payload string
	err := s.db.QueryRow(`SELECT result FROM batches WHERE id = ?`, batchID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %s not found", batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("query batch: %w", err)
	}
	var res model.BatchResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("unmarshal batch %s: %w", batchID, err)
	}
	return &res, nil
}
