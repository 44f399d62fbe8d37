package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todochat/internal/form"
	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/store"
	"github.com/idilsaglam/todochat/internal/ui"
)

// listItem adapts a TodoItem to bubbles/list.Item
type listItem struct{ model.TodoItem }

func (i listItem) TitleText() string {
	box := boxUnchecked
	if i.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.Text)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.TitleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}

func (m *Model) refreshList() {
	todos := m.deps.Store.FilteredTodos(m.filter)
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, listItem{t})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m Model) selectedTodo() (model.TodoItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.TodoItem, ok
}

func (m Model) updateTodos(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Add):
		cmd := m.openInput(inputTodo, "Add new todo")
		return m, cmd

	case key.Matches(msg, keys.Toggle):
		if it, ok := m.selectedTodo(); ok {
			m.deps.Store.Dispatch(store.UpdateTodo{Item: it.Toggled()})
			m.refreshList()
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if it, ok := m.selectedTodo(); ok {
			m.deps.Store.Dispatch(store.RemoveTodo{ID: it.ID})
			m.refreshList()
		}
		return m, nil

	case key.Matches(msg, keys.Filter):
		i := slices.Index(model.Filters, m.filter)
		m.setFilter(model.Filters[(i+1)%len(model.Filters)])
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setFilter(f model.Filter) {
	m.filter = f
	if m.deps.Bridge != nil {
		// failures are logged by the bridge; the selection still applies
		_ = m.deps.Bridge.SaveFilter(f)
	}
	m.list.ResetSelected()
	m.refreshList()
}

func (m *Model) submitTodo(raw string) error {
	text, err := form.TodoText(raw)
	if err != nil {
		return err
	}
	m.deps.Store.Dispatch(store.AddTodo{Text: text})
	m.refreshList()
	return nil
}

func (m Model) todoView() string {
	stats := store.Stats(m.deps.Store.Snapshot().Todos)

	var tabs []string
	for _, f := range model.Filters {
		label := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		if f == m.filter {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, mutedStyle.Render(label))
		}
	}

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), stats.Completed,
		pendingStyle.Render("•"), stats.Pending(),
		accentStyle.Render("Total"), stats.Total,
	)
	progress := mutedStyle.Render(fmt.Sprintf("%s  %d / %d completed",
		ui.ProgressBar(stats.Percent(), 28), stats.Completed, stats.Total))

	return strings.Join([]string{
		header,
		progress,
		strings.Join(tabs, "  "),
		"",
		m.list.View(),
	}, "\n")
}
