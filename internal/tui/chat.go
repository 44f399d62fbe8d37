package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todochat/internal/form"
	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/store"
)

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	room := m.deps.Store.CurrentRoom()

	switch {
	case key.Matches(msg, keys.Join):
		cmd := m.openInput(inputRoom, m.deps.DefaultRoom)
		return m, cmd

	case room == nil && key.Matches(msg, keys.Compose):
		// nothing to write to yet: join the default room, as the landing screen offers
		m.deps.Store.Dispatch(store.JoinRoom{Room: model.NewRoom(m.deps.DefaultRoom)})
		m.msgCursor = 0
		return m, nil

	case key.Matches(msg, keys.Compose):
		cmd := m.openInput(inputMessage, "Type a message...")
		return m, cmd

	case key.Matches(msg, keys.SwitchUser):
		m.user = (m.user + 1) % len(m.deps.Users)
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.msgCursor > 0 {
			m.msgCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if room != nil && m.msgCursor < len(room.Messages)-1 {
			m.msgCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if room != nil && m.msgCursor < len(room.Messages) {
			m.deps.Store.Dispatch(store.DeleteMessage{ID: room.Messages[m.msgCursor].ID})
			m.clampCursor()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) clampCursor() {
	room := m.deps.Store.CurrentRoom()
	n := 0
	if room != nil {
		n = len(room.Messages)
	}
	m.msgCursor = max(0, min(m.msgCursor, n-1))
}

func (m *Model) submitMessage(raw string) error {
	content, err := form.MessageContent(raw)
	if err != nil {
		return err
	}
	room := m.deps.Store.CurrentRoom()
	if room == nil {
		return fmt.Errorf("join a room first")
	}
	msg := model.NewMessage(m.currentUser(), content, room.RoomName, m.deps.Now())
	m.deps.Store.Dispatch(store.SendMessage{Message: msg})
	m.msgCursor = len(room.Messages)
	return nil
}

func (m *Model) submitRoom(raw string) error {
	if strings.TrimSpace(raw) == "" {
		raw = m.deps.DefaultRoom
	}
	name, err := form.RoomName(raw)
	if err != nil {
		return err
	}
	m.deps.Store.Dispatch(store.JoinRoom{Room: model.NewRoom(name)})
	m.msgCursor = 0
	return nil
}

func (m Model) chatView() string {
	room := m.deps.Store.CurrentRoom()
	if room == nil {
		return strings.Join([]string{
			titleStyle.Render("Chat"),
			"",
			"Not in a room.",
			helpStyle.Render(fmt.Sprintf("enter: join %s • J: join another room • tab: todos • q: quit", m.deps.DefaultRoom)),
		}, "\n")
	}

	width := max(m.width-8, 30)
	lines := []string{titleStyle.Render("Room: " + room.RoomName), ""}
	if len(room.Messages) == 0 {
		lines = append(lines, mutedStyle.Render("no messages yet"))
	}
	for i, msg := range room.Messages {
		self := msg.User == m.currentUser()
		bubble := otherBubble
		if self {
			bubble = selfBubble
		}
		body := bubble.Render(fmt.Sprintf("%s: %s", msg.User, msg.Content)) + " " +
			mutedStyle.Render(msg.Timestamp.In(time.Local).Format(time.Kitchen))
		if i == m.msgCursor {
			body = selectedStyle.Render(">") + " " + body
		} else {
			body = "  " + body
		}
		align := lipgloss.Left
		if self {
			align = lipgloss.Right
		}
		lines = append(lines, lipgloss.PlaceHorizontal(width, align, body))
	}
	lines = append(lines, "",
		fmt.Sprintf("You are %s", accentStyle.Render(m.currentUser())),
		helpStyle.Render("i: write • s: switch user • ↑/↓: select • d: delete • J: join room • tab: todos • q: quit"))
	return strings.Join(lines, "\n")
}
