package store

import "github.com/idilsaglam/todochat/internal/model"

// Namespace addresses one slice of the aggregate state.
type Namespace string

const (
	NamespaceTodos Namespace = "todos"
	NamespaceChat  Namespace = "chat"
)

// Action is a request to change exactly one slice.
type Action interface {
	Namespace() Namespace
	// Type names the action, e.g. "todos/add".
	Type() string
}

// Result tells the caller whether a dispatch changed state.
// Callers are free to ignore it.
type Result int

const (
	Ignored Result = iota
	Applied
)

func (r Result) String() string {
	if r == Applied {
		return "applied"
	}
	return "ignored"
}

// ---- todos ----

// AddTodo appends a new, uncompleted item. The store assigns the id.
type AddTodo struct{ Text string }

// RemoveTodo deletes the item with ID, if any.
type RemoveTodo struct{ ID int64 }

// UpdateTodo replaces the stored item that has Item.ID.
type UpdateTodo struct{ Item model.TodoItem }

// ReplaceTodos swaps in a whole collection. Used when rehydrating.
type ReplaceTodos struct{ Todos []model.TodoItem }

func (AddTodo) Namespace() Namespace      { return NamespaceTodos }
func (RemoveTodo) Namespace() Namespace   { return NamespaceTodos }
func (UpdateTodo) Namespace() Namespace   { return NamespaceTodos }
func (ReplaceTodos) Namespace() Namespace { return NamespaceTodos }

func (AddTodo) Type() string      { return "todos/add" }
func (RemoveTodo) Type() string   { return "todos/remove" }
func (UpdateTodo) Type() string   { return "todos/update" }
func (ReplaceTodos) Type() string { return "todos/replace" }

// ---- chat ----

// JoinRoom makes Room the current room, discarding the previous one.
type JoinRoom struct{ Room model.ChatRoom }

// SendMessage appends a locally authored message to the current room.
type SendMessage struct{ Message model.ChatMessage }

// ReceiveMessage appends a message delivered from elsewhere. It behaves
// exactly like SendMessage for now.
type ReceiveMessage struct{ Message model.ChatMessage }

// DeleteMessage removes the message with ID from the current room.
type DeleteMessage struct{ ID string }

func (JoinRoom) Namespace() Namespace       { return NamespaceChat }
func (SendMessage) Namespace() Namespace    { return NamespaceChat }
func (ReceiveMessage) Namespace() Namespace { return NamespaceChat }
func (DeleteMessage) Namespace() Namespace  { return NamespaceChat }

func (JoinRoom) Type() string       { return "chat/joinRoom" }
func (SendMessage) Type() string    { return "chat/sendMessage" }
func (ReceiveMessage) Type() string { return "chat/receiveMessage" }
func (DeleteMessage) Type() string  { return "chat/deleteMessage" }
