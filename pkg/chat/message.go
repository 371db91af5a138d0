// Package chat parses exported chat transcripts into structured message
// records. The parser accepts the line-oriented export grammar
// `DD/MM/YY, HH:MM - Sender: body`; anything else is treated as a
// continuation line and dropped.
package chat

import "time"

// MessageType classifies a message body.
type MessageType string

// Message body classifications.
const (
	TypeText  MessageType = "text"
	TypeMedia MessageType = "media"
)

// MediaOmittedMarker is the literal placeholder exports substitute for
// stripped media attachments.
const MediaOmittedMarker = "<Media omitted>"

// ForwardedMarker is the literal substring exports include on forwarded
// messages.
const ForwardedMarker = "Forwarded"

// Metadata holds per-message flags derived from the body.
type Metadata struct {
	HasEmoji    bool `json:"hasEmoji"`
	IsForwarded bool `json:"isForwarded"`
}

// Message is one parsed transcript line. Values are immutable once created.
type Message struct {
	Timestamp time.Time   `json:"timestamp"`
	Sender    string      `json:"sender"`
	Content   string      `json:"content"`
	Type      MessageType `json:"type"`
	Metadata  Metadata    `json:"metadata"`
}

// IsMedia reports whether the message is a stripped media attachment.
func (m Message) IsMedia() bool {
	return m.Type == TypeMedia
}

// Date returns the ISO calendar date (YYYY-MM-DD) of the message.
func (m Message) Date() string {
	return m.Timestamp.Format(time.DateOnly)
}

// Hour returns the hour-of-day (0-23) of the message.
func (m Message) Hour() int {
	return m.Timestamp.Hour()
}
