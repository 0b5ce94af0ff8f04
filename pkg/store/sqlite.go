package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/JasirTK/shopifysmartpromo/components/chat"
	content "github.com/JasirTK/shopifysmartpromo/components/content"
	"github.com/JasirTK/shopifysmartpromo/pkg/auth"
)

// DB wraps a sql.DB and implements the section, chat log, and user store
// interfaces the components depend on.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing and
// the demo binary).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS sections (
    key TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    last_updated DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS chat_logs (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL DEFAULT '',
    user_message TEXT NOT NULL,
    bot_response TEXT NOT NULL,
    topic TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_logs_created ON chat_logs(created_at);
CREATE INDEX IF NOT EXISTS idx_chat_logs_session ON chat_logs(session_id);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL
);
`

var _ content.SectionStore = (*DB)(nil)
var _ chat.LogStore = (*DB)(nil)
var _ auth.UserStore = (*DB)(nil)

// ListSections returns every stored section in primary-key order. Callers
// apply canonical display ordering themselves.
func (d *DB) ListSections(ctx context.Context) ([]content.ContentSection, error) {
	rows, err := d.QueryContext(ctx, `SELECT key, content, last_updated FROM sections ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []content.ContentSection
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, section)
	}
	return out, rows.Err()
}

// GetSection fetches one section by key.
func (d *DB) GetSection(ctx context.Context, key string) (content.ContentSection, error) {
	row := d.QueryRowContext(ctx, `SELECT key, content, last_updated FROM sections WHERE key = ?`, key)
	section, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return content.ContentSection{}, content.ErrSectionNotFound
	}
	return section, err
}

// UpsertSection inserts or replaces a section's content.
func (d *DB) UpsertSection(ctx context.Context, section content.ContentSection) (content.ContentSection, error) {
	raw, err := section.Content.MarshalJSON()
	if err != nil {
		return content.ContentSection{}, err
	}
	stamp := section.LastUpdated
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	_, err = d.ExecContext(ctx, `
        INSERT INTO sections (key, content, last_updated) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET content = excluded.content, last_updated = excluded.last_updated`,
		section.Key, string(raw), stamp.Format(time.RFC3339Nano))
	if err != nil {
		return content.ContentSection{}, err
	}
	section.LastUpdated = stamp
	return section, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (content.ContentSection, error) {
	var (
		key     string
		raw     string
		updated string
	)
	if err := row.Scan(&key, &raw, &updated); err != nil {
		return content.ContentSection{}, err
	}
	value, err := content.ParseValue([]byte(raw))
	if err != nil {
		return content.ContentSection{}, fmt.Errorf("section %s: %w", key, err)
	}
	stamp, err := parseTimestamp(updated)
	if err != nil {
		return content.ContentSection{}, fmt.Errorf("section %s: %w", key, err)
	}
	return content.ContentSection{Key: key, Content: value, LastUpdated: stamp}, nil
}

// AppendEntry logs one chat exchange.
func (d *DB) AppendEntry(ctx context.Context, entry chat.Entry) error {
	id := entry.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	stamp := entry.CreatedAt
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	_, err := d.ExecContext(ctx, `
        INSERT INTO chat_logs (id, session_id, user_message, bot_response, topic, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), entry.SessionID, entry.UserMessage, entry.BotResponse, entry.Topic,
		stamp.Format(time.RFC3339Nano))
	return err
}

// ListEntries returns chat exchanges logged after since, oldest first.
func (d *DB) ListEntries(ctx context.Context, since time.Time) ([]chat.Entry, error) {
	rows, err := d.QueryContext(ctx, `
        SELECT id, session_id, user_message, bot_response, topic, created_at
        FROM chat_logs WHERE created_at > ? ORDER BY created_at`,
		since.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []chat.Entry
	for rows.Next() {
		var (
			entry   chat.Entry
			rawID   string
			created string
		)
		if err := rows.Scan(&rawID, &entry.SessionID, &entry.UserMessage, &entry.BotResponse, &entry.Topic, &created); err != nil {
			return nil, err
		}
		if id, err := uuid.Parse(rawID); err == nil {
			entry.ID = id
		}
		stamp, err := parseTimestamp(created)
		if err != nil {
			return nil, err
		}
		entry.CreatedAt = stamp
		out = append(out, entry)
	}
	return out, rows.Err()
}

// GetUser fetches an admin account by username.
func (d *DB) GetUser(ctx context.Context, username string) (auth.User, error) {
	row := d.QueryRowContext(ctx, `SELECT id, username, hashed_password FROM users WHERE username = ?`, username)
	var (
		rawID string
		user  auth.User
	)
	if err := row.Scan(&rawID, &user.Username, &user.HashedPassword); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, err
	}
	if id, err := uuid.Parse(rawID); err == nil {
		user.ID = id
	}
	return user, nil
}

// CreateUser inserts an admin account. Fails on duplicate usernames.
func (d *DB) CreateUser(ctx context.Context, user auth.User) (auth.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	_, err := d.ExecContext(ctx, `INSERT INTO users (id, username, hashed_password) VALUES (?, ?, ?)`,
		user.ID.String(), user.Username, user.HashedPassword)
	if err != nil {
		return auth.User{}, err
	}
	return user, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if stamp, err := time.Parse(layout, raw); err == nil {
			return stamp, nil
		}
	}
	return time.Time{}, fmt.Errorf("store: unparseable timestamp %q", raw)
}
