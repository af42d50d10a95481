package chatRepo

import (
	"context"

	"laohotel/models"
)

// ChatRepository is the append-only conversation log.
type ChatRepository interface {
	Append(ctx context.Context, sessionID, role, content string) error
	// History returns the messages of one session, oldest first.
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	// AllHistory groups every message by session, oldest first within a session.
	AllHistory(ctx context.Context) (map[string][]models.HistoryEntry, error)
	// FirstUserMessages returns the first user message of every session, newest session first.
	FirstUserMessages(ctx context.Context) ([]models.FlatHistoryEntry, error)
}
