package state

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "mediactl"
	dbFileName = "history.db"
)

// Manager persists playback history. Position saves are throttled: one
// write per save interval, with the latest pending position flushed when
// the interval elapses and on Close.
type Manager struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time

	interval time.Duration
	limiter  *rate.Limiter

	// writeMu orders position writes against MarkFinished. Taken before saveMu.
	writeMu sync.Mutex

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]Entry
}

// Open opens (creating if needed) the history database at path. An empty
// path selects the XDG data directory.
func Open(path string, saveInterval time.Duration, log zerolog.Logger) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if path != ":memory:" {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	if saveInterval <= 0 {
		saveInterval = 5 * time.Second
	}
	return &Manager{
		db:       db,
		log:      log,
		now:      time.Now,
		interval: saveInterval,
		limiter:  rate.NewLimiter(rate.Every(saveInterval), 1),
		pending:  make(map[string]Entry),
	}, nil
}

// DefaultPath returns the history database location under XDG_DATA_HOME.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Close flushes pending saves and closes the database.
func (m *Manager) Close() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	pending := m.takePendingLocked()
	m.saveMu.Unlock()

	// Flush pending state
	m.write(pending)

	return m.db.Close()
}

// SavePosition records the playback position of e.URL.
func (m *Manager) SavePosition(e Entry) {
	if e.URL == "" {
		return
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	m.pending[e.URL] = e

	if m.limiter.Allow() {
		if m.saveTimer != nil {
			m.saveTimer.Stop()
			m.saveTimer = nil
		}
		pending := m.takePendingLocked()
		m.saveMu.Unlock()
		m.write(pending)
		return
	}

	if m.saveTimer == nil {
		m.saveTimer = time.AfterFunc(m.interval, m.flushPending)
	}
	m.saveMu.Unlock()
}

// Flush writes pending saves immediately.
func (m *Manager) Flush() {
	m.flushPending()
}

func (m *Manager) flushPending() {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}
	pending := m.takePendingLocked()
	m.saveMu.Unlock()

	m.write(pending)
}

func (m *Manager) takePendingLocked() []Entry {
	if len(m.pending) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(m.pending))
	for _, e := range m.pending {
		entries = append(entries, e)
	}
	clear(m.pending)
	return entries
}

func (m *Manager) write(entries []Entry) {
	if len(entries) == 0 {
		return
	}
	if err := savePositions(context.Background(), m.db, entries, m.now()); err != nil {
		m.log.Warn().Str("Method", "SavePosition").Int("Entries", len(entries)).Err(err).Msg("saving history failed")
	}
}

func (m *Manager) dropPending(url string) {
	m.saveMu.Lock()
	delete(m.pending, url)
	m.saveMu.Unlock()
}
