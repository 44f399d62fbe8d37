// Package store holds the todo and chat state and applies actions to it.
//
// A Store is constructed once per process with New and is not safe for
// concurrent use: every Dispatch runs the reducer and all listeners to
// completion before returning.
package store

import (
	"log/slog"
	"slices"
	"time"

	"github.com/idilsaglam/todochat/internal/model"
)

// State is the aggregate of both slices.
type State struct {
	Todos TodoState
	Chat  ChatState
}

func (s State) clone() State {
	return State{Todos: s.Todos.clone(), Chat: s.Chat.clone()}
}

// Change describes an applied dispatch. Prev and Next share memory with
// the store and must be treated as read-only.
type Change struct {
	Action    Action
	Namespace Namespace
	Prev      State
	Next      State
}

// Listener is called after every dispatch that changed state.
type Listener func(Change)

// DispatchObserver sees every dispatch, applied or not.
type DispatchObserver interface {
	ObserveDispatch(a Action, r Result)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now, which todo ids are derived from.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDispatchObserver registers o to see every dispatch.
func WithDispatchObserver(o DispatchObserver) Option {
	return func(s *Store) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

type subscription struct {
	id int
	fn Listener
}

// Store is the root store composing the todo and chat slices.
type Store struct {
	state     State
	log       *slog.Logger
	now       func() time.Time
	observers []DispatchObserver

	subs   []subscription
	nextID int
}

// New returns a Store with both slices empty.
func New(opts ...Option) *Store {
	s := &Store{
		state: State{Todos: TodoState{Todos: []model.TodoItem{}}},
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch routes a to the slice named by its namespace and notifies
// listeners if the state changed.
func (s *Store) Dispatch(a Action) Result {
	if a == nil {
		return Ignored
	}
	prev := s.state
	next := prev
	res := Ignored

	switch ns := a.Namespace(); ns {
	case NamespaceTodos:
		next.Todos, res = todoSlice{now: s.now}.reduce(prev.Todos, a)
	case NamespaceChat:
		next.Chat, res = chatSlice{log: s.log}.reduce(prev.Chat, a)
	default:
		s.log.Warn("dispatch to unknown namespace",
			slog.String("namespace", string(ns)),
			slog.String("action", a.Type()))
	}

	if res == Applied {
		s.state = next
		c := Change{Action: a, Namespace: a.Namespace(), Prev: prev, Next: next}
		for _, sub := range slices.Clone(s.subs) {
			sub.fn(c)
		}
	}
	for _, o := range s.observers {
		o.ObserveDispatch(a, res)
	}
	return res
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	return s.state.clone()
}

// FilteredTodos is FilteredTodos over the current state.
func (s *Store) FilteredTodos(f model.Filter) []model.TodoItem {
	return FilteredTodos(s.state.Todos, f)
}

// CurrentRoom returns a copy of the active room, or nil.
func (s *Store) CurrentRoom() *model.ChatRoom {
	return s.state.Chat.clone().CurrentRoom
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	}
}

// Close drops all listeners. Dispatch keeps working but notifies nobody.
func (s *Store) Close() {
	s.subs = nil
}
