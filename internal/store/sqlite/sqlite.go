package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/dmarkelov/supportchat-server/internal/store"
)

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db       *sql.DB
	operator string
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	sender     TEXT NOT NULL,
	receiver   TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_messages_sender_receiver ON messages(sender, receiver);

CREATE TABLE IF NOT EXISTS subscribers (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE
);
`

// New creates a new SQLite store and applies the schema.
// dbPath is the path to the SQLite database file; operator is the reserved
// identifier of the support agent, used by the conversation queries.
func New(dbPath, operator string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection; this also serializes
	// appends so concurrent routes never interleave partial records.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, operator: operator}, nil
}

// NewWithSetup creates a new SQLite store and runs a setup function before
// the schema is applied. Useful for tests to seed data.
func NewWithSetup(dbPath, operator string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	s, err := New(dbPath, operator)
	if err != nil {
		return nil, err
	}

	if setup != nil {
		if err := setup(s.db); err != nil {
			s.db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== MessageStore implementation ====

// Append persists a new message with a server-assigned timestamp.
func (s *SQLiteStore) Append(ctx context.Context, sender, receiver, text string) (*store.Message, error) {
	createdAt := time.Now()

	query := `
		INSERT INTO messages (sender, receiver, text, created_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, sender, receiver, text, createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return &store.Message{
		ID:        id,
		Sender:    sender,
		Receiver:  receiver,
		Text:      text,
		CreatedAt: createdAt,
	}, nil
}

// History returns the full conversation between user and the operator,
// ascending by timestamp. The auto-increment id breaks same-timestamp ties
// so replay order always matches insertion order.
func (s *SQLiteStore) History(ctx context.Context, user string) ([]*store.Message, error) {
	query := `
		SELECT id, sender, receiver, text, created_at
		FROM messages
		WHERE (sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, user, s.operator, s.operator, user)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// DistinctSenders returns every user that has messaged the operator.
func (s *SQLiteStore) DistinctSenders(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT sender
		FROM messages
		WHERE receiver = ?
		ORDER BY sender ASC
	`
	rows, err := s.db.QueryContext(ctx, query, s.operator)
	if err != nil {
		return nil, fmt.Errorf("query distinct senders: %w", err)
	}
	defer rows.Close()

	senders := make([]string, 0)
	for rows.Next() {
		var sender string
		if err := rows.Scan(&sender); err != nil {
			return nil, fmt.Errorf("scan sender: %w", err)
		}
		senders = append(senders, sender)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate senders: %w", err)
	}

	return senders, nil
}

// RecentMessages returns up to limit messages, newest first.
func (s *SQLiteStore) RecentMessages(ctx context.Context, limit int) ([]*store.Message, error) {
	query := `
		SELECT id, sender, receiver, text, created_at
		FROM messages
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ==== SubscriberStore implementation ====

// AddSubscriber stores a new email address.
func (s *SQLiteStore) AddSubscriber(ctx context.Context, email string) (*store.Subscriber, error) {
	query := `INSERT INTO subscribers (email) VALUES (?)`

	result, err := s.db.ExecContext(ctx, query, email)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, store.ErrDuplicateSubscriber
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return &store.Subscriber{ID: id, Email: email}, nil
}

func scanMessages(rows *sql.Rows) ([]*store.Message, error) {
	messages := make([]*store.Message, 0)
	for rows.Next() {
		var msg store.Message
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Receiver, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}
