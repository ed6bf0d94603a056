package domain

import (
	"strings"
	"time"
)

type Todo struct {
	ID        string
	BoardID   string
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TodoInput struct {
	ID       string
	BoardID  string
	Name     string
	Position int
}

func NewTodo(in TodoInput, now time.Time) (Todo, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.BoardID = strings.TrimSpace(in.BoardID)
	in.Name = strings.TrimSpace(in.Name)

	if in.ID == "" {
		return Todo{}, ErrInvalidID
	}
	if in.BoardID == "" {
		return Todo{}, ErrInvalidBoardID
	}
	if in.Name == "" {
		return Todo{}, ErrInvalidName
	}
	if in.Position < 0 {
		return Todo{}, ErrInvalidPosition
	}

	return Todo{
		ID:        in.ID,
		BoardID:   in.BoardID,
		Name:      in.Name,
		Position:  in.Position,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

func (t *Todo) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	t.Name = name
	t.UpdatedAt = now.UTC()
	return nil
}

func (t *Todo) SetPosition(position int, now time.Time) error {
	if position < 0 {
		return ErrInvalidPosition
	}
	t.Position = position
	t.UpdatedAt = now.UTC()
	return nil
}

// Positions returns a copy of todos whose Position matches their slice index.
func Positions(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	copy(out, todos)
	for idx := range out {
		out[idx].Position = idx
	}
	return out
}

// TodoIDs returns ids in list order.
func TodoIDs(todos []Todo) []string {
	out := make([]string, 0, len(todos))
	for _, todo := range todos {
		out = append(out, todo.ID)
	}
	return out
}
