package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodoText(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"buy milk", "buy milk", nil},
		{"  walk dog \n", "walk dog", nil},
		{"abc", "abc", nil},
		{"ab", "", ErrTodoTooShort},
		{"   a  ", "", ErrTodoTooShort},
		{"", "", ErrTodoTooShort},
		{"äöü", "äöü", nil},
	}
	for _, tt := range tests {
		got, err := TodoText(tt.in)
		assert.ErrorIs(t, err, tt.err, tt.in)
		if tt.err == nil {
			assert.NoError(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got)
	}
}

func TestMessageContent(t *testing.T) {
	got, err := MessageContent(" hi ")
	assert.NoError(t, err)
	assert.Equal(t, "hi", got)

	_, err = MessageContent(" \t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestRoomName(t *testing.T) {
	got, err := RoomName("General ")
	assert.NoError(t, err)
	assert.Equal(t, "General", got)

	_, err = RoomName("")
	assert.ErrorIs(t, err, ErrEmptyRoomName)
}
