// Package store persists day menus in SQLite so the catalogue survives
// restarts.
//
//	st, err := store.Open("menu.db")
//	days, err := st.Load(ctx)
//	err = st.Save(ctx, parsed)
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsawler/cantine/model"
)

// Memory is the path of a private in-memory database.
const Memory = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS days (
	date       TEXT PRIMARY KEY,
	items      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// Store reads and writes days.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if path == Memory {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns every stored day sorted by date.
func (s *Store) Load(ctx context.Context) ([]model.Day, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, items FROM days ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("store: load: %w", err)
	}
	defer rows.Close()

	var days []model.Day
	for rows.Next() {
		var rawDate, rawItems string
		if err := rows.Scan(&rawDate, &rawItems); err != nil {
			return nil, fmt.Errorf("store: load: %w", err)
		}

		date, err := model.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("store: load: %w", err)
		}
		var items []string
		if err := json.Unmarshal([]byte(rawItems), &items); err != nil {
			return nil, fmt.Errorf("store: load %s: %w", rawDate, err)
		}
		days = append(days, model.Day{Date: date, Items: items})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load: %w", err)
	}
	return days, nil
}

// Save upserts days in a single transaction.
func (s *Store) Save(ctx context.Context, days []model.Day) error {
	if len(days) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO days (date, items, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	defer stmt.Close()

	stamp := s.now().UTC().Format(time.RFC3339)
	for _, day := range days {
		items := day.Items
		if items == nil {
			items = []string{}
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("store: save %s: %w", day.Date, err)
		}
		if _, err := stmt.ExecContext(ctx, day.Date.String(), string(raw), stamp); err != nil {
			return fmt.Errorf("store: save %s: %w", day.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	return nil
}
