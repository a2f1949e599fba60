// Package database stores the local export history: one row per
// successfully exported deck. History is best-effort bookkeeping for the
// "recent exports" view; a history failure never blocks an export.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ExportRecord is one successful deck export.
type ExportRecord struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	SlideCount int       `json:"slideCount"`
	ImageCount int       `json:"imageCount"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryService provides access to the export history database.
type HistoryService struct {
	db     *sql.DB
	logger func(string)
}

// NewHistoryService opens (and if needed creates) the history database at
// dbPath. SQLite runs in WAL mode for the same file-lock reasons the rest
// of the desktop app family uses it.
func NewHistoryService(dbPath string, logger func(string)) (*HistoryService, error) {
	if logger == nil {
		logger = func(string) {}
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &HistoryService{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logger(fmt.Sprintf("[history] database ready at %s", dbPath))
	return s, nil
}

func (s *HistoryService) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS export_history (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    slide_count INTEGER NOT NULL,
    image_count INTEGER NOT NULL,
    path        TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_export_history_created_at ON export_history(created_at);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate history database: %w", err)
	}
	return nil
}

// Record inserts a new export record and returns it with the assigned id.
func (s *HistoryService) Record(rec ExportRecord) (ExportRecord, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Exec(
		`INSERT INTO export_history (title, slide_count, image_count, path, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Title, rec.SlideCount, rec.ImageCount, rec.Path, rec.CreatedAt,
	)
	if err != nil {
		return ExportRecord{}, fmt.Errorf("failed to insert export record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ExportRecord{}, fmt.Errorf("failed to read export record id: %w", err)
	}
	rec.ID = id
	s.logger(fmt.Sprintf("[history] recorded export %d (%q, %d slides)", id, rec.Title, rec.SlideCount))
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (s *HistoryService) Recent(limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, title, slide_count, image_count, path, created_at
		 FROM export_history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export history: %w", err)
	}
	defer rows.Close()

	var out []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.SlideCount, &rec.ImageCount, &rec.Path, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Clear deletes all history records.
func (s *HistoryService) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM export_history`); err != nil {
		return fmt.Errorf("failed to clear export history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *HistoryService) Close() error {
	return s.db.Close()
}
