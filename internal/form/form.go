// Package form validates user input before it is dispatched to the store.
// The store itself accepts anything.
package form

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinTodoLength is the shortest todo text accepted.
const MinTodoLength = 3

var (
	ErrTodoTooShort  = fmt.Errorf("todo must be at least %d characters", MinTodoLength)
	ErrEmptyMessage  = errors.New("message cannot be empty")
	ErrEmptyRoomName = errors.New("room name cannot be empty")
)

// TodoText trims s and checks its length.
func TodoText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < MinTodoLength {
		return "", ErrTodoTooShort
	}
	return s, nil
}

// MessageContent trims s and rejects blank messages.
func MessageContent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyMessage
	}
	return s, nil
}

// RoomName trims s and rejects blank names.
func RoomName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyRoomName
	}
	return s, nil
}
