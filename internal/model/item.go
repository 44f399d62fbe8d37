package model

import (
	"errors"
	"fmt"
	"strings"
)

// TodoItem is the domain model for a todo entry.
type TodoItem struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Toggled returns a copy of the item with Completed flipped.
func (t TodoItem) Toggled() TodoItem {
	t.Completed = !t.Completed
	return t
}

// Filter selects a view over the todo collection.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterUncompleted Filter = "uncompleted"
	FilterCompleted   Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterUncompleted, FilterCompleted}

var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter accepts a filter name, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterAll, FilterUncompleted, FilterCompleted:
		return f, nil
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Match reports whether the item belongs to the filtered view.
func (f Filter) Match(t TodoItem) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterUncompleted:
		return !t.Completed
	default:
		return true
	}
}

func (f Filter) String() string { return string(f) }
