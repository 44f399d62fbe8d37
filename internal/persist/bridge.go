// Package persist keeps store slices in sync with durable storage.
//
// The write path is a store listener: after every applied dispatch it
// serializes the slice that changed and overwrites its key. The read path
// runs once at startup and feeds stored values back through the slices'
// own replace actions.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/store"
	"github.com/idilsaglam/todochat/internal/store/jsonstore"
)

// Durable storage keys.
const (
	KeyChatRoom    = "chatRoom"
	KeyTodos       = "todos"
	KeySelectedTab = "selectedTab"
)

// WriteObserver is told about every durable write.
type WriteObserver interface {
	ObserveWrite(key string, err error)
}

// CorruptValueError reports a stored value that could not be decoded.
type CorruptValueError struct {
	Key string
	Err error
}

func (e *CorruptValueError) Error() string {
	return fmt.Sprintf("corrupt value under %q: %v", e.Key, e.Err)
}

func (e *CorruptValueError) Unwrap() error { return e.Err }

// Bridge connects a store to a KV.
type Bridge struct {
	kv  jsonstore.KV
	log *slog.Logger
	obs WriteObserver
}

// Option configures a Bridge.
type Option func(*Bridge)

func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

func WithWriteObserver(o WriteObserver) Option {
	return func(b *Bridge) { b.obs = o }
}

// New returns a Bridge writing to kv.
func New(kv jsonstore.KV, opts ...Option) *Bridge {
	b := &Bridge{kv: kv, log: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach registers the write path on s and returns the function that
// removes it. Call Rehydrate first.
func (b *Bridge) Attach(s *store.Store) (detach func()) {
	return s.Subscribe(b.onChange)
}

func (b *Bridge) onChange(c store.Change) {
	switch c.Namespace {
	case store.NamespaceChat:
		b.writeRoom(c.Next.Chat.CurrentRoom)
	case store.NamespaceTodos:
		b.writeTodos(c.Next.Todos.Todos)
	}
}

func (b *Bridge) writeRoom(room *model.ChatRoom) {
	if room == nil {
		b.observe(KeyChatRoom, b.kv.Delete(KeyChatRoom))
		return
	}
	data, err := json.Marshal(room)
	if err != nil {
		b.observe(KeyChatRoom, fmt.Errorf("json marshal: %w", err))
		return
	}
	b.observe(KeyChatRoom, b.kv.Set(KeyChatRoom, string(data)))
}

func (b *Bridge) writeTodos(todos []model.TodoItem) {
	if todos == nil {
		todos = []model.TodoItem{}
	}
	data, err := json.Marshal(todos)
	if err != nil {
		b.observe(KeyTodos, fmt.Errorf("json marshal: %w", err))
		return
	}
	b.observe(KeyTodos, b.kv.Set(KeyTodos, string(data)))
}

func (b *Bridge) observe(key string, err error) {
	if err != nil {
		b.log.Error("Failed to persist state", slog.String("key", key), slog.String("error", err.Error()))
	}
	if b.obs != nil {
		b.obs.ObserveWrite(key, err)
	}
}

// Rehydrate loads both slices into s. A missing key leaves its slice
// empty. A corrupt value also leaves its slice empty; it is logged and
// returned as a *CorruptValueError, joined with any other failure.
// Rehydrate never panics and the caller may carry on after an error.
func (b *Bridge) Rehydrate(s *store.Store) error {
	var errs []error

	todos, err := b.loadTodos()
	if err != nil {
		errs = append(errs, b.diagnose(KeyTodos, err))
	} else if todos != nil {
		s.Dispatch(store.ReplaceTodos{Todos: todos})
	}

	room, err := b.loadRoom()
	if err != nil {
		errs = append(errs, b.diagnose(KeyChatRoom, err))
	} else if room != nil {
		s.Dispatch(store.JoinRoom{Room: *room})
	}

	return errors.Join(errs...)
}

func (b *Bridge) diagnose(key string, err error) error {
	b.log.Warn("Could not restore saved state, starting empty",
		slog.String("key", key), slog.String("error", err.Error()))
	return err
}

// loadRoom returns (nil, nil) when nothing is stored.
func (b *Bridge) loadRoom() (*model.ChatRoom, error) {
	raw, ok, err := b.kv.Get(KeyChatRoom)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyChatRoom, err)
	}
	if !ok {
		return nil, nil
	}
	room, err := DecodeRoom(raw)
	if err != nil {
		return nil, &CorruptValueError{Key: KeyChatRoom, Err: err}
	}
	room.Messages = b.dropForeign(room)
	return &room, nil
}

// dropForeign keeps only the messages addressed to room.
func (b *Bridge) dropForeign(room model.ChatRoom) []model.ChatMessage {
	kept := room.Messages[:0]
	for _, m := range room.Messages {
		if m.RoomName != room.RoomName {
			b.log.Warn("Dropping saved message from another room",
				slog.String("id", m.ID),
				slog.String("message_room", m.RoomName),
				slog.String("room", room.RoomName))
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func (b *Bridge) loadTodos() ([]model.TodoItem, error) {
	raw, ok, err := b.kv.Get(KeyTodos)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyTodos, err)
	}
	if !ok {
		return nil, nil
	}
	todos, err := DecodeTodos(raw)
	if err != nil {
		return nil, &CorruptValueError{Key: KeyTodos, Err: err}
	}
	return todos, nil
}

// DecodeRoom parses a serialized room, reviving every timestamp from its
// ISO-8601 text.
func DecodeRoom(raw string) (model.ChatRoom, error) {
	var room model.ChatRoom
	if err := json.Unmarshal([]byte(raw), &room); err != nil {
		return model.ChatRoom{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return room, nil
}

// DecodeTodos parses a serialized todo list and rejects duplicate ids.
func DecodeTodos(raw string) ([]model.TodoItem, error) {
	var todos []model.TodoItem
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if todos == nil {
		todos = []model.TodoItem{}
	}
	seen := make(map[int64]struct{}, len(todos))
	for _, it := range todos {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("duplicate todo id %d", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return todos, nil
}
