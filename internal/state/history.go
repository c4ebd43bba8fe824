package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/mediacontroller/internal/db"
)

// Entry is one media_history row.
type Entry struct {
	URL       string
	Title     string
	Position  time.Duration
	Duration  time.Duration // 0 when unknown
	Finished  bool
	PlayCount int
	UpdatedAt time.Time
}

// Resumable returns true if playback can continue from Position.
func (e Entry) Resumable() bool {
	return !e.Finished && e.Position > 0
}

// RecordStart counts a new playback of url and clears its finished flag.
func (m *Manager) RecordStart(url, title string) error {
	return dbutil.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO media_history (url, title, position_ms, finished, play_count, updated_at)
			VALUES (?, ?, 0, 0, 1, ?)
			ON CONFLICT(url) DO UPDATE SET
				title = COALESCE(NULLIF(excluded.title, ''), media_history.title),
				finished = 0,
				play_count = media_history.play_count + 1,
				updated_at = excluded.updated_at
		`, url, title, m.now().UnixMilli())
		return err
	})
}

// MarkFinished records that url played to its end and resets its position.
func (m *Manager) MarkFinished(url string) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.dropPending(url)

	return dbutil.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO media_history (url, position_ms, finished, play_count, updated_at)
			VALUES (?, 0, 1, 0, ?)
			ON CONFLICT(url) DO UPDATE SET
				position_ms = 0,
				finished = 1,
				updated_at = excluded.updated_at
		`, url, m.now().UnixMilli())
		return err
	})
}

// Get returns the entry for url, or nil if it was never played.
func (m *Manager) Get(url string) (*Entry, error) {
	row := m.db.QueryRow(`
		SELECT url, title, position_ms, duration_ms, finished, play_count, updated_at
		FROM media_history WHERE url = ?
	`, url)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // never played is not an error
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Recent returns up to limit entries, most recently updated first.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := m.db.Query(`
		SELECT url, title, position_ms, duration_ms, finished, play_count, updated_at
		FROM media_history
		ORDER BY updated_at DESC, url
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var title sql.NullString
	var positionMs int64
	var durationMs sql.NullInt64
	var updatedAt int64

	if err := row.Scan(&e.URL, &title, &positionMs, &durationMs, &e.Finished, &e.PlayCount, &updatedAt); err != nil {
		return nil, err
	}

	e.Title = dbutil.NullStringValue(title)
	e.Position = time.Duration(positionMs) * time.Millisecond
	e.Duration = dbutil.MillisDuration(durationMs)
	e.UpdatedAt = time.UnixMilli(updatedAt)
	return &e, nil
}

func savePositions(ctx context.Context, db *sql.DB, entries []Entry, now time.Time) error {
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO media_history (url, title, position_ms, duration_ms, finished, play_count, updated_at)
			VALUES (?, ?, ?, ?, 0, 0, ?)
			ON CONFLICT(url) DO UPDATE SET
				title = COALESCE(NULLIF(excluded.title, ''), media_history.title),
				position_ms = excluded.position_ms,
				duration_ms = COALESCE(excluded.duration_ms, media_history.duration_ms),
				finished = 0,
				updated_at = excluded.updated_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entries {
			pos := max(e.Position, 0).Milliseconds()
			if _, err := stmt.Exec(e.URL, e.Title, pos, dbutil.NullMillis(e.Duration), now.UnixMilli()); err != nil {
				return err
			}
		}
		return nil
	})
}
