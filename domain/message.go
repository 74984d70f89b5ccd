// Package domain contains core concepts of the chat system.
// This file defines User, Message and the transcript entry.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a display name. It may be empty until the client names itself
// and is not guaranteed unique across sessions; sessions are keyed by
// their socket address, never by name.
type User = string

// Message is a chat payload. Only a text variant exists today; the wire
// format keeps the variant tag so new kinds can be added without breaking
// old clients.
type Message struct {
	Text string `json:"Text"`
}

// NewText builds a text message.
func NewText(text string) Message {
	return Message{Text: text}
}

// String renders the message for display, trimming trailing whitespace
// picked up from line-based input.
func (m Message) String() string {
	return strings.TrimSpace(m.Text)
}

// HistoryEntry represents one immutable line of the server transcript.
type HistoryEntry struct {
	ID   uuid.UUID // unique identifier
	User User
	Msg  Message
	At   time.Time
}
