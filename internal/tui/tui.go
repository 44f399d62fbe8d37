// Package tui is the interactive terminal front-end: a todo view and a
// chat view over one store. Every change goes through store.Dispatch.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/persist"
	"github.com/idilsaglam/todochat/internal/store"
)

// Deps are the collaborators the UI reads from and writes to.
type Deps struct {
	Store       *store.Store
	Bridge      *persist.Bridge // optional; remembers the selected filter
	Users       []string
	DefaultRoom string
	Now         func() time.Time
}

type view int

const (
	viewTodos view = iota
	viewChat
)

type inputMode int

const (
	inputNone inputMode = iota
	inputTodo
	inputMessage
	inputRoom
)

type keyMap struct {
	SwitchView key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Filter     key.Binding
	Compose    key.Binding
	Join       key.Binding
	SwitchUser key.Binding
	Up         key.Binding
	Down       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	SwitchView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "todos/chat")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Compose:    key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i", "write")),
	Join:       key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "join room")),
	SwitchUser: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "switch user")),
	Up:         key.NewBinding(key.WithKeys("up", "k")),
	Down:       key.NewBinding(key.WithKeys("down", "j")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model implements tea.Model.
type Model struct {
	deps Deps

	view   view
	filter model.Filter
	list   list.Model

	mode  inputMode
	input textinput.Model
	err   string

	user      int // index into deps.Users
	msgCursor int
	width     int
	height    int
}

// New builds the initial model, restoring the saved filter.
func New(d Deps) Model {
	if d.Now == nil {
		d.Now = time.Now
	}
	if len(d.Users) == 0 {
		d.Users = []string{"User1", "User2"}
	}
	if d.DefaultRoom == "" {
		d.DefaultRoom = "General"
	}

	filter := model.FilterAll
	if d.Bridge != nil {
		filter = d.Bridge.LoadFilter()
	}

	l := list.New(nil, itemDelegate{}, 80, 16)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding { return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Filter, keys.SwitchView} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		deps:   d,
		filter: filter,
		list:   l,
		input:  ti,
		width:  80,
		height: 24,
	}
	m.refreshList()
	return m
}

// Run starts the program on the alternate screen and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, d Deps, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(d), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-4, 20), max(msg.Height-10, 4))
		return m, nil
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, keys.SwitchView) {
			if m.view == viewTodos {
				m.view = viewChat
			} else {
				m.view = viewTodos
			}
			m.err = ""
			return m, nil
		}
		if m.view == viewChat {
			return m.updateChat(msg)
		}
		return m.updateTodos(msg)
	}
	if m.mode != inputNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateInput handles keys while the text input is open.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		var err error
		switch m.mode {
		case inputTodo:
			err = m.submitTodo(m.input.Value())
		case inputMessage:
			err = m.submitMessage(m.input.Value())
		case inputRoom:
			err = m.submitRoom(m.input.Value())
		}
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openInput(mode inputMode, placeholder string) tea.Cmd {
	m.mode = mode
	m.err = ""
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.err = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) currentUser() string { return m.deps.Users[m.user] }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	if m.view == viewChat {
		b.WriteString(m.chatView())
	} else {
		b.WriteString(m.todoView())
	}
	if m.mode != inputNone {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := m.inputTitle()
		if m.err != "" {
			title += " " + errorStyle.Render(m.err)
		}
		b.WriteString("\n")
		b.WriteString(bar.Render(title + "\n" + m.input.View()))
	} else if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err))
	}
	return panelString(b.String())
}

func (m Model) tabs() string {
	todo, chat := mutedStyle.Render("Todo list"), mutedStyle.Render("Chat")
	if m.view == viewChat {
		chat = activeTabStyle.Render("Chat")
	} else {
		todo = activeTabStyle.Render("Todo list")
	}
	return fmt.Sprintf("%s  %s", todo, chat)
}

func (m Model) inputTitle() string {
	switch m.mode {
	case inputTodo:
		return "Add new todo"
	case inputRoom:
		return "Join room"
	}
	return "Message as " + m.currentUser()
}
