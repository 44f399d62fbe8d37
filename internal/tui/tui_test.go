package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/persist"
	"github.com/idilsaglam/todochat/internal/store"
	"github.com/idilsaglam/todochat/internal/store/jsonstore"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEscape}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

type harness struct {
	t     *testing.T
	m     Model
	store *store.Store
	kv    *jsonstore.Memory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	kv := jsonstore.NewMemory()
	s := store.New()
	b := persist.New(kv)
	b.Attach(s)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := New(Deps{
		Store:       s,
		Bridge:      b,
		Users:       []string{"User1", "User2"},
		DefaultRoom: "General",
		Now: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
	})
	return &harness{t: t, m: m, store: s, kv: kv}
}

func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		next, c := h.m.Update(msg)
		var ok bool
		h.m, ok = next.(Model)
		require.True(h.t, ok)
		cmd = c
	}
	return cmd
}

func (h *harness) addTodo(text string) {
	h.t.Helper()
	h.send(runes("a"), runes(text), enter)
}

func TestAddTodoThroughInput(t *testing.T) {
	h := newHarness(t)

	h.addTodo("buy milk")

	todos := h.store.Snapshot().Todos.Todos
	require.Len(t, todos, 1)
	assert.Equal(t, "buy milk", todos[0].Text)
	assert.Equal(t, inputNone, h.m.mode)
	assert.Len(t, h.m.list.Items(), 1)

	_, ok, _ := h.kv.Get(persist.KeyTodos)
	assert.True(t, ok, "adding a todo persists it")
}

func TestAddTodoRejectsShortText(t *testing.T) {
	h := newHarness(t)

	h.send(runes("a"), runes("ab"), enter)

	assert.Empty(t, h.store.Snapshot().Todos.Todos)
	assert.Equal(t, inputTodo, h.m.mode, "input stays open on error")
	assert.NotEmpty(t, h.m.err)

	h.send(esc)
	assert.Equal(t, inputNone, h.m.mode)
	assert.Empty(t, h.m.err)
}

func TestToggleAndDeleteSelected(t *testing.T) {
	h := newHarness(t)
	h.addTodo("buy milk")
	h.addTodo("walk dog")

	h.send(space)
	todos := h.store.Snapshot().Todos.Todos
	assert.True(t, todos[0].Completed)
	assert.False(t, todos[1].Completed)

	h.send(down, runes("d"))
	todos = h.store.Snapshot().Todos.Todos
	require.Len(t, todos, 1)
	assert.Equal(t, "buy milk", todos[0].Text)
}

func TestSelectionFollowsShrinkingList(t *testing.T) {
	t.Run("after delete", func(t *testing.T) {
		h := newHarness(t)
		h.addTodo("buy milk")
		h.addTodo("walk dog")

		h.send(down, runes("d"))
		require.Len(t, h.m.list.Items(), 1)
		assert.Equal(t, 0, h.m.list.Index())

		h.send(space)
		todos := h.store.Snapshot().Todos.Todos
		require.Len(t, todos, 1)
		assert.True(t, todos[0].Completed, "the remaining item is still selectable")
	})

	t.Run("after toggle leaves the filter", func(t *testing.T) {
		h := newHarness(t)
		h.addTodo("buy milk")
		h.addTodo("walk dog")
		h.send(runes("f"))
		require.Equal(t, model.FilterUncompleted, h.m.filter)

		h.send(down, space)
		require.Len(t, h.m.list.Items(), 1)
		assert.Equal(t, 0, h.m.list.Index())

		h.send(space)
		todos := h.store.Snapshot().Todos.Todos
		assert.True(t, todos[0].Completed)
		assert.True(t, todos[1].Completed)
	})
}

func TestFilterCyclesAndPersists(t *testing.T) {
	h := newHarness(t)
	h.addTodo("buy milk")
	h.addTodo("walk dog")
	h.send(space) // complete "buy milk"

	h.send(runes("f"))
	assert.Equal(t, model.FilterUncompleted, h.m.filter)
	require.Len(t, h.m.list.Items(), 1)
	assert.Equal(t, "walk dog", h.m.list.Items()[0].(listItem).Text)

	h.send(runes("f"))
	assert.Equal(t, model.FilterCompleted, h.m.filter)
	require.Len(t, h.m.list.Items(), 1)
	assert.Equal(t, "buy milk", h.m.list.Items()[0].(listItem).Text)

	raw, _, _ := h.kv.Get(persist.KeySelectedTab)
	assert.Equal(t, "completed", raw)

	// a new model restores the selection
	m2 := New(Deps{Store: h.store, Bridge: persist.New(h.kv)})
	assert.Equal(t, model.FilterCompleted, m2.filter)

	h.send(runes("f"))
	assert.Equal(t, model.FilterAll, h.m.filter)
}

func TestChatJoinSendDelete(t *testing.T) {
	h := newHarness(t)
	h.send(tab)
	require.Equal(t, viewChat, h.m.view)

	h.send(enter) // join General
	room := h.store.CurrentRoom()
	require.NotNil(t, room)
	assert.Equal(t, "General", room.RoomName)

	h.send(runes("i"), runes("hi"), enter)
	h.send(runes("s"))
	h.send(runes("i"), runes("hello back"), enter)

	room = h.store.CurrentRoom()
	require.Len(t, room.Messages, 2)
	assert.Equal(t, "User1", room.Messages[0].User)
	assert.Equal(t, "User2", room.Messages[1].User)
	assert.Equal(t, "General", room.Messages[1].RoomName)
	assert.True(t, room.Messages[0].Timestamp.Before(room.Messages[1].Timestamp))
	assert.NotEqual(t, room.Messages[0].ID, room.Messages[1].ID)
	assert.Equal(t, 1, h.m.msgCursor)

	h.send(runes("k"), runes("d"))
	room = h.store.CurrentRoom()
	require.Len(t, room.Messages, 1)
	assert.Equal(t, "hello back", room.Messages[0].Content)
	assert.Equal(t, 0, h.m.msgCursor)

	raw, ok, _ := h.kv.Get(persist.KeyChatRoom)
	require.True(t, ok)
	restored, err := persist.DecodeRoom(raw)
	require.NoError(t, err)
	assert.Len(t, restored.Messages, 1)
}

func TestEmptyMessageIsRejected(t *testing.T) {
	h := newHarness(t)
	h.send(tab, enter)

	h.send(runes("i"), runes("   "), enter)

	assert.Empty(t, h.store.CurrentRoom().Messages)
	assert.Equal(t, inputMessage, h.m.mode)
}

func TestJoinOtherRoomReplacesHistory(t *testing.T) {
	h := newHarness(t)
	h.send(tab, enter)
	h.send(runes("i"), runes("hi"), enter)

	h.send(runes("J"), runes("Random"), enter)

	room := h.store.CurrentRoom()
	require.NotNil(t, room)
	assert.Equal(t, "Random", room.RoomName)
	assert.Empty(t, room.Messages)
}

func TestJoinWithBlankNameUsesDefault(t *testing.T) {
	h := newHarness(t)
	h.send(tab, runes("J"), enter)

	require.NotNil(t, h.store.CurrentRoom())
	assert.Equal(t, "General", h.store.CurrentRoom().RoomName)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTypingQDoesNotQuitWhileEditing(t *testing.T) {
	h := newHarness(t)
	h.send(runes("a"), runes("q"))

	assert.Equal(t, inputTodo, h.m.mode)
	assert.Equal(t, "q", h.m.input.Value())
}

func TestViewRendersBothScreens(t *testing.T) {
	h := newHarness(t)
	h.addTodo("buy milk")
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := h.m.View()
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "0 / 1 completed")

	h.send(tab)
	assert.Contains(t, h.m.View(), "Not in a room")

	h.send(enter, runes("i"), runes("hi"), enter)
	out = h.m.View()
	assert.Contains(t, out, "Room: General")
	assert.Contains(t, out, "User1: hi")
}
