package models

import "time"

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "bot"
)

// ChatMessage is one append-only row of conversation history.
type ChatMessage struct {
	MessageID string    `bson:"message_id" json:"message_id"`
	SessionID string    `bson:"session_id" json:"session_id"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// HistoryEntry is a ChatMessage without its identifiers, as returned by the history endpoints.
type HistoryEntry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// FlatHistoryEntry pairs a session with one of its messages.
type FlatHistoryEntry struct {
	SessionID string       `json:"sessionID"`
	Content   HistoryEntry `json:"content"`
}

// Entry strips identifiers from the message.
func (m ChatMessage) Entry() HistoryEntry {
	return HistoryEntry{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp}
}
