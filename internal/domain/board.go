package domain

import (
	"strings"
	"time"
)

// Board is an ordered container of to-dos shown as one column on screen.
type Board struct {
	ID        string
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBoard constructs a validated board.
func NewBoard(id, name string, position int, now time.Time) (Board, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Board{}, ErrInvalidID
	}
	if name == "" {
		return Board{}, ErrInvalidName
	}
	if position < 0 {
		return Board{}, ErrInvalidPosition
	}

	return Board{
		ID:        id,
		Name:      name,
		Position:  position,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// Rename replaces the board name.
func (b *Board) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	b.Name = name
	b.UpdatedAt = now.UTC()
	return nil
}

// SetPosition moves the board within the board strip.
func (b *Board) SetPosition(position int, now time.Time) error {
	if position < 0 {
		return ErrInvalidPosition
	}
	b.Position = position
	b.UpdatedAt = now.UTC()
	return nil
}
