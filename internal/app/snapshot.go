package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/evanschultz/todoboard/internal/domain"
)

// SnapshotVersion defines a package constant value.
const SnapshotVersion = "todoboard.snapshot.v1"

// Snapshot is a portable copy of every board and to-do.
type Snapshot struct {
	Version    string          `json:"version" yaml:"version"`
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Boards     []SnapshotBoard `json:"boards" yaml:"boards"`
	Todos      []SnapshotTodo  `json:"todos" yaml:"todos"`
}

// SnapshotBoard represents snapshot board data used by this package.
type SnapshotBoard struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Position  int       `json:"position" yaml:"position"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// SnapshotTodo represents snapshot todo data used by this package.
type SnapshotTodo struct {
	ID        string    `json:"id" yaml:"id"`
	BoardID   string    `json:"board_id" yaml:"board_id"`
	Name      string    `json:"name" yaml:"name"`
	Position  int       `json:"position" yaml:"position"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ExportSnapshot handles export snapshot.
func (s *Service) ExportSnapshot(ctx context.Context) (Snapshot, error) {
	view, err := s.BoardView(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.clock().UTC(),
		Boards:     make([]SnapshotBoard, 0, len(view)),
		Todos:      make([]SnapshotTodo, 0),
	}
	for _, entry := range view {
		snap.Boards = append(snap.Boards, snapshotBoardFromDomain(entry.Board))
		for _, todo := range entry.Todos {
			snap.Todos = append(snap.Todos, snapshotTodoFromDomain(todo))
		}
	}
	snap.sort()
	return snap, nil
}

// ImportSnapshot upserts every board and to-do, then renumbers each imported board.
func (s *Service) ImportSnapshot(ctx context.Context, snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	snap.sort()

	for _, board := range snap.Boards {
		if err := s.upsertBoard(ctx, board.toDomain()); err != nil {
			return err
		}
	}
	for _, todo := range snap.Todos {
		if err := s.upsertTodo(ctx, todo.toDomain()); err != nil {
			return err
		}
	}

	now := s.clock()
	for _, board := range snap.Boards {
		todos, err := s.ListTodos(ctx, board.ID)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceTodoOrder(ctx, board.ID, domain.TodoIDs(todos), now); err != nil {
			return fmt.Errorf("renumber board %q: %w", board.ID, err)
		}
	}
	return nil
}

// Validate validates the requested operation.
func (s *Snapshot) Validate() error {
	if s.Version != "" && s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version: %q", s.Version)
	}

	boardIDs := map[string]struct{}{}
	for i, b := range s.Boards {
		if strings.TrimSpace(b.ID) == "" {
			return fmt.Errorf("boards[%d].id is required", i)
		}
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("boards[%d].name is required", i)
		}
		if b.Position < 0 {
			return fmt.Errorf("boards[%d].position must be >= 0", i)
		}
		if b.CreatedAt.IsZero() || b.UpdatedAt.IsZero() {
			return fmt.Errorf("boards[%d] timestamps are required", i)
		}
		if _, ok := boardIDs[b.ID]; ok {
			return fmt.Errorf("duplicate board id: %q", b.ID)
		}
		boardIDs[b.ID] = struct{}{}
	}

	todoIDs := map[string]struct{}{}
	for i, t := range s.Todos {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("todos[%d].id is required", i)
		}
		if strings.TrimSpace(t.BoardID) == "" {
			return fmt.Errorf("todos[%d].board_id is required", i)
		}
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("todos[%d].name is required", i)
		}
		if t.Position < 0 {
			return fmt.Errorf("todos[%d].position must be >= 0", i)
		}
		if t.CreatedAt.IsZero() || t.UpdatedAt.IsZero() {
			return fmt.Errorf("todos[%d] timestamps are required", i)
		}
		if _, ok := boardIDs[t.BoardID]; !ok {
			return fmt.Errorf("todos[%d] references unknown board_id %q", i, t.BoardID)
		}
		if _, ok := todoIDs[t.ID]; ok {
			return fmt.Errorf("duplicate todo id: %q", t.ID)
		}
		todoIDs[t.ID] = struct{}{}
	}

	return nil
}

// upsertBoard handles upsert board.
func (s *Service) upsertBoard(ctx context.Context, b domain.Board) error {
	if _, err := s.repo.GetBoard(ctx, b.ID); err == nil {
		return s.repo.UpdateBoard(ctx, b)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.repo.CreateBoard(ctx, b)
}

// upsertTodo handles upsert todo.
func (s *Service) upsertTodo(ctx context.Context, t domain.Todo) error {
	if _, err := s.repo.GetTodo(ctx, t.ID); err == nil {
		return s.repo.UpdateTodo(ctx, t)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.repo.CreateTodo(ctx, t)
}

// sort orders boards by position and todos by board then position.
func (s *Snapshot) sort() {
	boardOrder := make(map[string]int, len(s.Boards))
	sort.SliceStable(s.Boards, func(i, j int) bool {
		if s.Boards[i].Position == s.Boards[j].Position {
			return s.Boards[i].ID < s.Boards[j].ID
		}
		return s.Boards[i].Position < s.Boards[j].Position
	})
	for idx, b := range s.Boards {
		boardOrder[b.ID] = idx
	}
	sort.SliceStable(s.Todos, func(i, j int) bool {
		bi, bj := boardOrder[s.Todos[i].BoardID], boardOrder[s.Todos[j].BoardID]
		if bi != bj {
			return bi < bj
		}
		if s.Todos[i].Position == s.Todos[j].Position {
			return s.Todos[i].ID < s.Todos[j].ID
		}
		return s.Todos[i].Position < s.Todos[j].Position
	})
}

// snapshotBoardFromDomain handles snapshot board from domain.
func snapshotBoardFromDomain(b domain.Board) SnapshotBoard {
	return SnapshotBoard{
		ID:        b.ID,
		Name:      b.Name,
		Position:  b.Position,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

// snapshotTodoFromDomain handles snapshot todo from domain.
func snapshotTodoFromDomain(t domain.Todo) SnapshotTodo {
	return SnapshotTodo{
		ID:        t.ID,
		BoardID:   t.BoardID,
		Name:      t.Name,
		Position:  t.Position,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

// toDomain converts snapshot data into a domain board.
func (b SnapshotBoard) toDomain() domain.Board {
	return domain.Board{
		ID:        strings.TrimSpace(b.ID),
		Name:      strings.TrimSpace(b.Name),
		Position:  b.Position,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

// toDomain converts snapshot data into a domain todo.
func (t SnapshotTodo) toDomain() domain.Todo {
	return domain.Todo{
		ID:        strings.TrimSpace(t.ID),
		BoardID:   strings.TrimSpace(t.BoardID),
		Name:      strings.TrimSpace(t.Name),
		Position:  t.Position,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}
