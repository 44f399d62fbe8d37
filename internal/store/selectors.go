package store

import "github.com/idilsaglam/todochat/internal/model"

// FilteredTodos returns the items matching f, in their original order.
func FilteredTodos(s TodoState, f model.Filter) []model.TodoItem {
	out := make([]model.TodoItem, 0, len(s.Todos))
	for _, it := range s.Todos {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// TodoStats are the counters shown next to the list.
type TodoStats struct {
	Completed int
	Total     int
}

// Stats counts completed and total items.
func Stats(s TodoState) TodoStats {
	st := TodoStats{Total: len(s.Todos)}
	for _, it := range s.Todos {
		if it.Completed {
			st.Completed++
		}
	}
	return st
}

// Pending is Total minus Completed.
func (s TodoStats) Pending() int { return s.Total - s.Completed }

// Percent is the completion percentage, 0 for an empty list.
func (s TodoStats) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}
