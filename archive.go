package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Saicharan2707l/portfolio/internal/page"
)

// Outcomes recorded for each archived message.
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// ArchivedMessage is one contact submission and how the relay handled it.
type ArchivedMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	Outcome   string    `json:"outcome"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Archive keeps a copy of every contact submission in sqlite, so a failed
// relay call does not lose the message.
type Archive struct {
	db     *sql.DB
	salt   string
	logger *zap.Logger
	now    func() time.Time
}

// OpenArchive opens (creating if needed) the archive database at path.
func OpenArchive(path string, logger *zap.Logger) (*Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	createMessages := `
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		body TEXT NOT NULL,
		hashed_ip TEXT NOT NULL DEFAULT '',  -- Store hashed IP instead of raw IP
		outcome TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(createMessages); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating messages table: %w", err)
	}

	return &Archive{
		db:     db,
		salt:   randomToken(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close releases the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record stores msg with the relay outcome sendErr.
func (a *Archive) Record(ctx context.Context, msg page.ContactMessage, sendErr error) error {
	outcome, errText := OutcomeSent, ""
	if sendErr != nil {
		outcome, errText = OutcomeFailed, sendErr.Error()
	}
	hashed := ""
	if msg.RemoteAddr != "" {
		hashed = a.hashIP(msg.RemoteAddr)
	}

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, body, hashed_ip, outcome, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msg.Name, msg.Email, msg.Body, hashed, outcome, errText, a.now())
	if err != nil {
		return fmt.Errorf("recording message: %w", err)
	}
	return nil
}

// List returns up to limit messages, newest first. A negative limit
// returns every message.
func (a *Archive) List(ctx context.Context, limit int) ([]ArchivedMessage, error) {
	if limit == 0 {
		limit = 200
	}
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, email, body, hashed_ip, outcome, error, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var out []ArchivedMessage
	for rows.Next() {
		var m ArchivedMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.HashedIP, &m.Outcome, &m.Error, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes one message. It reports false when id does not exist.
func (a *Archive) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := a.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting message %d: %w", id, err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// Prune deletes messages older than retention and returns how many went.
func (a *Archive) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	result, err := a.db.ExecContext(ctx, "DELETE FROM messages WHERE created_at < ?", a.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("pruning messages: %w", err)
	}
	n, _ := result.RowsAffected()
	if n > 0 {
		a.logger.Info("archive pruned", zap.Int64("removed", n), zap.Duration("retention", retention))
	}
	return n, nil
}

// Wrap returns a relay that archives every message after next handles it.
// Archiving never changes the relay outcome.
func (a *Archive) Wrap(next page.Relay) page.Relay {
	return page.RelayFunc(func(ctx context.Context, msg page.ContactMessage) error {
		sendErr := next.Send(ctx, msg)
		if err := a.Record(context.WithoutCancel(ctx), msg, sendErr); err != nil {
			a.logger.Error("archive write failed", zap.Error(err))
		}
		return sendErr
	})
}

// hashIP hashes an address with the per-process salt (consistent per IP
// for the life of the process).
func (a *Archive) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func randomToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic(fmt.Sprintf("generating random token: %v", err))
	}
	return hex.EncodeToString(bytes)
}
