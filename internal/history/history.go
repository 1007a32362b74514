// Package history manages the watch history in a SQLite database.
// The schema is versioned with goose migrations embedded in the binary.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"portal/internal/media"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a watch history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// applies pending migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(logrus.StandardLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migrating history: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record writes or updates the entry for entry.Code.
func (s *Store) Record(ctx context.Context, entry media.HistoryEntry) error {
	if entry.Code == "" {
		return fmt.Errorf("history entry has no episode code")
	}
	if entry.WatchedAt.IsZero() {
		entry.WatchedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (code, name, video_url, position, duration, watched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			video_url = excluded.video_url,
			position = excluded.position,
			duration = excluded.duration,
			watched_at = excluded.watched_at`,
		entry.Code, entry.Name, entry.VideoURL, entry.Position, entry.Duration, entry.WatchedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("recording history: %w", err)
	}
	return nil
}

// List returns all entries, most recently watched first.
func (s *Store) List(ctx context.Context) ([]media.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, video_url, position, duration, watched_at
		FROM history
		ORDER BY watched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		var (
			e       media.HistoryEntry
			watched int64
		)
		if err := rows.Scan(&e.Code, &e.Name, &e.VideoURL, &e.Position, &e.Duration, &watched); err != nil {
			return nil, fmt.Errorf("reading history: %w", err)
		}
		e.WatchedAt = time.Unix(0, watched)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Remove deletes the entry for code. Removing a missing entry is not an error.
func (s *Store) Remove(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE code = ?`, code); err != nil {
		return fmt.Errorf("removing history entry: %w", err)
	}
	return nil
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// FormatForDisplay creates display strings for selection from history entries.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	return lo.Map(entries, func(e media.HistoryEntry, _ int) string {
		display := e.Code
		if e.Name != "" {
			display += " " + e.Name
		}
		switch {
		case e.Position > 0 && e.Duration > 0:
			display += fmt.Sprintf(" [%.0f%%]", (e.Position/e.Duration)*100)
		case e.Position > 0:
			display += " [" + formatDuration(e.Position) + "]"
		}
		return display
	})
}

// formatDuration formats seconds as H:MM:SS or M:SS.
func formatDuration(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
