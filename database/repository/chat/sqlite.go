package chatRepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"laohotel/models"

	"github.com/google/uuid"
)

type sqliteChatRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteChatRepo returns a ChatRepository on the chat_history table.
func NewSQLiteChatRepo(db *sql.DB) ChatRepository {
	return &sqliteChatRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *sqliteChatRepo) Append(ctx context.Context, sessionID, role, content string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_history (message_id, session_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)`,
		"M-"+uuid.NewString(), sessionID, role, content, r.now(),
	)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *sqliteChatRepo) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT message_id, session_id, role, content, timestamp
		 FROM chat_history WHERE session_id = ?
		 ORDER BY timestamp ASC, rowid ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.MessageID, &m.SessionID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return messages, nil
}

func (r *sqliteChatRepo) AllHistory(ctx context.Context) (map[string][]models.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, role, content, timestamp
		 FROM chat_history
		 ORDER BY session_id, timestamp ASC, rowid ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := map[string][]models.HistoryEntry{}
	for rows.Next() {
		var sessionID string
		var e models.HistoryEntry
		if err := rows.Scan(&sessionID, &e.Role, &e.Content, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		sessions[sessionID] = append(sessions[sessionID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return sessions, nil
}

func (r *sqliteChatRepo) FirstUserMessages(ctx context.Context) ([]models.FlatHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, role, content, timestamp
		 FROM chat_history WHERE role = ?
		 ORDER BY timestamp ASC, rowid ASC`,
		models.RoleUser,
	)
	if err != nil {
		return nil, fmt.Errorf("query first messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	seen := map[string]bool{}
	entries := []models.FlatHistoryEntry{}
	for rows.Next() {
		var f models.FlatHistoryEntry
		if err := rows.Scan(&f.SessionID, &f.Content.Role, &f.Content.Content, &f.Content.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if seen[f.SessionID] {
			continue
		}
		seen[f.SessionID] = true
		entries = append(entries, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return newestFirst(entries), nil
}
