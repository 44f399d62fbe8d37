package ui

import (
	"fmt"
	"time"

	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/store"
)

const maxTextWidth = 80

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTextWidth {
		return string(r[:maxTextWidth-3]) + "..."
	}
	return s
}

// TodoHeader is the counts line plus the progress bar.
func TodoHeader(st store.TodoStats, filter model.Filter) []string {
	t := Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s",
		C(t.Title, "Todos"),
		C(t.Success, t.SymDone), st.Completed,
		C(t.Pending, t.SymUnchecked), st.Pending(),
		C(t.Accent, "Total"), st.Total,
		C(t.Muted, "["+filter.String()+"]"),
	)
	return []string{
		header,
		C(t.Muted, ProgressBar(st.Percent(), 28)),
		C(t.Muted, fmt.Sprintf("%d / %d completed", st.Completed, st.Total)),
	}
}

// TodoLines renders one line per item: id, checkbox, text.
func TodoLines(items []model.TodoItem) []string {
	t := Current()
	if len(items) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box, color := t.BoxUnchecked, t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			C(dim, fmt.Sprintf("%d", it.ID)), C(color, box), truncate(it.Text)))
	}
	return out
}

// GroupedTodoLines splits items into Pending and Done sections.
func GroupedTodoLines(items []model.TodoItem) []string {
	t := Current()
	var pend, done []model.TodoItem
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	section := func(title string, its []model.TodoItem) []string {
		lines := []string{C(t.Accent, title)}
		if len(its) == 0 {
			return append(lines, C(t.Muted, "(none)"))
		}
		return append(lines, TodoLines(its)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

// MessageLines renders a room's history. Messages from self are marked.
func MessageLines(room *model.ChatRoom, self string) []string {
	t := Current()
	if room == nil {
		return []string{C(t.Muted, "not in a room")}
	}
	lines := []string{C(t.Title, "Room: "+room.RoomName)}
	if len(room.Messages) == 0 {
		return append(lines, C(t.Muted, "no messages"))
	}
	for _, m := range room.Messages {
		color := t.Other
		if m.User == self {
			color = t.Self
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s",
			C(t.Muted, m.Timestamp.In(time.Local).Format(time.TimeOnly)),
			C(color, m.User),
			truncate(m.Content)))
		lines = append(lines, C(dim, "  id "+m.ID))
	}
	return lines
}
