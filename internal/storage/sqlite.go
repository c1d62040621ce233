// Package storage persists scraped record tables in SQLite. It is an
// optional downstream consumer: the scrape pipeline never depends on a
// store call succeeding.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store handles all database operations for scraped promotions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and ensures the schema
// exists.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS promotions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		current_price TEXT NOT NULL,
		regular_price TEXT NOT NULL,
		discount TEXT NOT NULL,
		validity_date TEXT NOT NULL,
		source TEXT NOT NULL,
		scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_promotions_source ON promotions(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Row is one persisted promotion record.
type Row struct {
	ID           int
	Name         string
	CurrentPrice string
	RegularPrice string
	Discount     string
	ValidityDate string
	Source       string
	ScrapedAt    time.Time
}

// InsertRows appends rows in one transaction.
func (s *Store) InsertRows(rows []Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO promotions (name, current_price, regular_price, discount, validity_date, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Name, r.CurrentPrice, r.RegularPrice, r.Discount, r.ValidityDate, r.Source); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit insert: %w", err)
	}
	return nil
}

// DeleteSource removes every row scraped from the given source.
func (s *Store) DeleteSource(source string) error {
	_, err := s.db.Exec("DELETE FROM promotions WHERE source = ?", source)
	if err != nil {
		return fmt.Errorf("failed to delete rows for %q: %w", source, err)
	}
	return nil
}

// FetchAll returns every persisted row, newest first.
func (s *Store) FetchAll() ([]Row, error) {
	rows, err := s.db.Query(`
		SELECT id, name, current_price, regular_price, discount, validity_date, source, scraped_at
		FROM promotions
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Name, &r.CurrentPrice, &r.RegularPrice, &r.Discount, &r.ValidityDate, &r.Source, &r.ScrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountBySource returns the stored row count for one source.
func (s *Store) CountBySource(source string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM promotions WHERE source = ?", source).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
