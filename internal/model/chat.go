package model

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// TimestampLayout is the ISO-8601 form timestamps take on disk.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ChatMessage is a single message posted to a room.
type ChatMessage struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	RoomName  string    `json:"roomName"`
}

// NewMessage builds a message whose id is derived from its creation instant.
func NewMessage(user, content, roomName string, at time.Time) ChatMessage {
	at = at.UTC()
	return ChatMessage{
		ID:        at.Format(time.RFC3339Nano),
		User:      user,
		Content:   content,
		Timestamp: at,
		RoomName:  roomName,
	}
}

// ChatRoom is the active room and its append-ordered history.
type ChatRoom struct {
	RoomName string        `json:"roomName"`
	Messages []ChatMessage `json:"messages"`
}

// NewRoom returns an empty room.
func NewRoom(name string) ChatRoom {
	return ChatRoom{RoomName: name, Messages: []ChatMessage{}}
}

// Clone returns a copy that shares no backing array with r.
func (r ChatRoom) Clone() ChatRoom {
	msgs := slices.Clone(r.Messages)
	if msgs == nil {
		msgs = []ChatMessage{}
	}
	return ChatRoom{RoomName: r.RoomName, Messages: msgs}
}

// Wire forms. Timestamps travel as text and are parsed back explicitly.

type messageWire struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	RoomName  string `json:"roomName"`
}

type roomWire struct {
	RoomName string        `json:"roomName"`
	Messages []messageWire `json:"messages"`
}

// MarshalJSON writes timestamps as UTC ISO-8601 with millisecond precision.
func (m ChatMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

func (m ChatMessage) wire() messageWire {
	return messageWire{
		ID:        m.ID,
		User:      m.User,
		Content:   m.Content,
		Timestamp: m.Timestamp.UTC().Format(TimestampLayout),
		RoomName:  m.RoomName,
	}
}

// UnmarshalJSON revives the timestamp from its text form.
func (m *ChatMessage) UnmarshalJSON(b []byte) error {
	var w messageWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	ts, err := ParseTimestamp(w.Timestamp)
	if err != nil {
		return fmt.Errorf("message %q: %w", w.ID, err)
	}
	*m = ChatMessage{ID: w.ID, User: w.User, Content: w.Content, Timestamp: ts, RoomName: w.RoomName}
	return nil
}

// ParseTimestamp reads an ISO-8601 instant. Any fractional precision is accepted.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("parse timestamp: empty")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp: %w", err)
	}
	return t.UTC(), nil
}

// MarshalJSON always emits a messages array, never null.
func (r ChatRoom) MarshalJSON() ([]byte, error) {
	w := roomWire{RoomName: r.RoomName, Messages: make([]messageWire, 0, len(r.Messages))}
	for _, m := range r.Messages {
		w.Messages = append(w.Messages, m.wire())
	}
	return json.Marshal(w)
}

// UnmarshalJSON rejects rooms without a name.
func (r *ChatRoom) UnmarshalJSON(b []byte) error {
	var w struct {
		RoomName *string       `json:"roomName"`
		Messages []ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.RoomName == nil {
		return fmt.Errorf("room: missing roomName")
	}
	if w.Messages == nil {
		w.Messages = []ChatMessage{}
	}
	*r = ChatRoom{RoomName: *w.RoomName, Messages: w.Messages}
	return nil
}
