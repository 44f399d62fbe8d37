package store

import (
	"log/slog"
	"slices"

	"github.com/idilsaglam/todochat/internal/model"
)

// ChatState is the chat slice. CurrentRoom is nil until a room is joined.
type ChatState struct {
	CurrentRoom *model.ChatRoom
}

func (s ChatState) clone() ChatState {
	if s.CurrentRoom == nil {
		return ChatState{}
	}
	r := s.CurrentRoom.Clone()
	return ChatState{CurrentRoom: &r}
}

type chatSlice struct {
	log *slog.Logger
}

func (c chatSlice) reduce(s ChatState, a Action) (ChatState, Result) {
	switch a := a.(type) {
	case JoinRoom:
		r := a.Room.Clone()
		return ChatState{CurrentRoom: &r}, Applied

	case SendMessage:
		return c.appendMessage(s, a.Message)

	case ReceiveMessage:
		return c.appendMessage(s, a.Message)

	case DeleteMessage:
		if s.CurrentRoom == nil {
			c.log.Warn("No current room found", slog.String("message_id", a.ID))
			return s, Ignored
		}
		msgs := slices.DeleteFunc(slices.Clone(s.CurrentRoom.Messages), func(m model.ChatMessage) bool {
			return m.ID == a.ID
		})
		if len(msgs) == len(s.CurrentRoom.Messages) {
			return s, Ignored
		}
		return ChatState{CurrentRoom: &model.ChatRoom{RoomName: s.CurrentRoom.RoomName, Messages: msgs}}, Applied
	}
	return s, Ignored
}

func (c chatSlice) appendMessage(s ChatState, m model.ChatMessage) (ChatState, Result) {
	if s.CurrentRoom == nil || s.CurrentRoom.RoomName != m.RoomName {
		c.log.Debug("message dropped",
			slog.String("message_id", m.ID),
			slog.String("room", m.RoomName),
			slog.Bool("room_active", s.CurrentRoom != nil))
		return s, Ignored
	}
	msgs := append(slices.Clone(s.CurrentRoom.Messages), m)
	return ChatState{CurrentRoom: &model.ChatRoom{RoomName: s.CurrentRoom.RoomName, Messages: msgs}}, Applied
}
