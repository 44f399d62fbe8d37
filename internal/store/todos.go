package store

import (
	"slices"
	"time"

	"github.com/idilsaglam/todochat/internal/model"
)

// TodoState is the todo slice. Todos keeps insertion order.
type TodoState struct {
	Todos []model.TodoItem

	// highest id ever issued or loaded; ids never go below it
	lastID int64
}

func (s TodoState) clone() TodoState {
	return TodoState{Todos: slices.Clone(s.Todos), lastID: s.lastID}
}

type todoSlice struct {
	now func() time.Time
}

func (t todoSlice) reduce(s TodoState, a Action) (TodoState, Result) {
	switch a := a.(type) {
	case AddTodo:
		id := t.nextID(s)
		todos := append(slices.Clone(s.Todos), model.TodoItem{ID: id, Text: a.Text})
		return TodoState{Todos: todos, lastID: id}, Applied

	case RemoveTodo:
		i := indexOfTodo(s.Todos, a.ID)
		if i < 0 {
			return s, Ignored
		}
		return TodoState{Todos: slices.Delete(slices.Clone(s.Todos), i, i+1), lastID: s.lastID}, Applied

	case UpdateTodo:
		i := indexOfTodo(s.Todos, a.Item.ID)
		if i < 0 {
			return s, Ignored
		}
		todos := slices.Clone(s.Todos)
		todos[i] = a.Item
		return TodoState{Todos: todos, lastID: s.lastID}, Applied

	case ReplaceTodos:
		todos := slices.Clone(a.Todos)
		if todos == nil {
			todos = []model.TodoItem{}
		}
		last := s.lastID
		for _, it := range todos {
			last = max(last, it.ID)
		}
		return TodoState{Todos: todos, lastID: last}, Applied
	}
	return s, Ignored
}

// nextID is the creation instant in milliseconds, bumped past anything
// already issued when the clock has not moved on.
func (t todoSlice) nextID(s TodoState) int64 {
	id := t.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

func indexOfTodo(todos []model.TodoItem, id int64) int {
	return slices.IndexFunc(todos, func(it model.TodoItem) bool { return it.ID == id })
}
