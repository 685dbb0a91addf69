// Package sqlite persists sessions, messages, mental state history and mood
// entries in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/PabloGalante/farum-support/internal/domain"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements the session, message, history and mood ports on SQLite.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// Open opens or creates a database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		last_strategy TEXT NOT NULL DEFAULT '',
		message_count INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, updated_at DESC);

	CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		author     TEXT NOT NULL,
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		strategy   TEXT NOT NULL DEFAULT '',
		persona    TEXT NOT NULL DEFAULT '',
		fallback   INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at);

	CREATE TABLE IF NOT EXISTS mental_state (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL,
		taken_at  TEXT NOT NULL,
		snapshot  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_mental_state_user ON mental_state(user_id, taken_at);

	CREATE TABLE IF NOT EXISTS moods (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		mood       TEXT NOT NULL,
		intensity  INTEGER NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_moods_user ON moods(user_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	return time.Parse(timeLayout, v)
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at, updated_at, last_strategy, message_count)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		string(session.ID), string(session.UserID),
		formatTime(session.CreatedAt), formatTime(session.UpdatedAt),
		string(session.LastStrategy), session.MessageCount,
	)
	if err != nil {
		return fmt.Errorf("sqlite CreateSession: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrSessionExists
	}
	return nil
}

func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET updated_at = ?, last_strategy = ?, message_count = ? WHERE id = ?`,
		formatTime(session.UpdatedAt), string(session.LastStrategy), session.MessageCount, string(session.ID),
	)
	if err != nil {
		return fmt.Errorf("sqlite UpdateSession: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at, last_strategy, message_count FROM sessions WHERE id = ?`,
		string(id))

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite GetSession: %w", err)
	}
	return sess, nil
}

func (s *Store) ListSessionsByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, created_at, updated_at, last_strategy, message_count
		 FROM sessions WHERE user_id = ? ORDER BY updated_at DESC LIMIT ?`,
		string(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite ListSessionsByUser: %w", err)
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite ListSessionsByUser: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSession(ctx context.Context, id domain.SessionID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, string(id)); err != nil {
		return fmt.Errorf("sqlite DeleteSession: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.Session, error) {
	var (
		id, userID, createdAt, updatedAt, strategy string
		count                                      int
	)
	if err := row.Scan(&id, &userID, &createdAt, &updatedAt, &strategy, &count); err != nil {
		return nil, err
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		ID:           domain.SessionID(id),
		UserID:       domain.UserID(userID),
		CreatedAt:    created,
		UpdatedAt:    updated,
		LastStrategy: domain.Strategy(strategy),
		MessageCount: count,
	}, nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if msg.ID == "" {
		msg.ID = domain.MessageID(s.newID())
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, user_id, author, text, created_at, strategy, persona, fallback)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(msg.ID), string(msg.SessionID), string(msg.UserID), string(msg.Author), msg.Text,
		formatTime(msg.CreatedAt), string(msg.Strategy), msg.Persona, msg.Fallback,
	)
	if err != nil {
		return fmt.Errorf("sqlite AppendMessage: %w", err)
	}
	return nil
}

// GetMessagesBySession returns the last limit messages, oldest first.
func (s *Store) GetMessagesBySession(ctx context.Context, sessionID domain.SessionID, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, user_id, author, text, created_at, strategy, persona, fallback FROM (
			SELECT *, rowid AS seq FROM messages WHERE session_id = ?
			ORDER BY created_at DESC, seq DESC LIMIT ?
		 ) ORDER BY created_at ASC, seq ASC`,
		string(sessionID), limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite GetMessagesBySession: %w", err)
	}
	defer rows.Close()

	out := []*domain.Message{}
	for rows.Next() {
		var (
			id, sid, uid, author, text, createdAt, strategy, persona string
			fallback                                                 bool
		)
		if err := rows.Scan(&id, &sid, &uid, &author, &text, &createdAt, &strategy, &persona, &fallback); err != nil {
			return nil, fmt.Errorf("sqlite GetMessagesBySession: %w", err)
		}
		created, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite GetMessagesBySession: %w", err)
		}
		out = append(out, &domain.Message{
			ID:        domain.MessageID(id),
			SessionID: domain.SessionID(sid),
			UserID:    domain.UserID(uid),
			Author:    domain.Role(author),
			Text:      text,
			CreatedAt: created,
			Strategy:  domain.Strategy(strategy),
			Persona:   persona,
			Fallback:  fallback,
		})
	}
	return out, rows.Err()
}

func (s *Store) DeleteMessagesBySession(ctx context.Context, sessionID domain.SessionID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, string(sessionID)); err != nil {
		return fmt.Errorf("sqlite DeleteMessagesBySession: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// HistoryStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendSnapshot(ctx context.Context, userID domain.UserID, snap *domain.MentalStateSnapshot) (domain.SnapshotID, error) {
	cp := *snap
	cp.UserID = userID
	if cp.ID == "" {
		cp.ID = domain.SnapshotID(s.newID())
	}

	data, err := json.Marshal(cp)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO mental_state (id, user_id, taken_at, snapshot) VALUES (?, ?, ?, ?)`,
		string(cp.ID), string(userID), formatTime(cp.Timestamp), string(data),
	); err != nil {
		return "", fmt.Errorf("sqlite AppendSnapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return cp.ID, nil
}

func (s *Store) ReadRecent(ctx context.Context, userID domain.UserID, since time.Time) ([]domain.MentalStateSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT snapshot FROM mental_state WHERE user_id = ? AND taken_at >= ? ORDER BY taken_at ASC, rowid ASC`,
		string(userID), formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("sqlite ReadRecent: %w", err)
	}
	defer rows.Close()

	var out []domain.MentalStateSnapshot
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("sqlite ReadRecent: %w", err)
		}
		var snap domain.MentalStateSnapshot
		if err := json.Unmarshal([]byte(data), &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// ─────────────────────────────────────────
// MoodStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMood(ctx context.Context, entry *domain.MoodEntry) error {
	if entry.ID == "" {
		entry.ID = domain.MoodEntryID(s.newID())
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moods (id, user_id, mood, intensity, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(entry.ID), string(entry.UserID), entry.Mood, entry.Intensity, entry.Notes, formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite AppendMood: %w", err)
	}
	return nil
}

func (s *Store) ListMoodsByUser(ctx context.Context, userID domain.UserID, since time.Time) ([]*domain.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mood, intensity, notes, created_at FROM moods
		 WHERE user_id = ? AND created_at >= ? ORDER BY created_at ASC, rowid ASC`,
		string(userID), formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("sqlite ListMoodsByUser: %w", err)
	}
	defer rows.Close()

	out := []*domain.MoodEntry{}
	for rows.Next() {
		var (
			id, mood, notes, createdAt string
			intensity                  int
		)
		if err := rows.Scan(&id, &mood, &intensity, &notes, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite ListMoodsByUser: %w", err)
		}
		created, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite ListMoodsByUser: %w", err)
		}
		out = append(out, &domain.MoodEntry{
			ID:        domain.MoodEntryID(id),
			UserID:    userID,
			Mood:      mood,
			Intensity: intensity,
			Notes:     notes,
			CreatedAt: created,
		})
	}
	return out, rows.Err()
}
