package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/evanschultz/todoboard/internal/domain"
)

// Default names used when a create request carries a blank name.
const (
	DefaultBoardName = "New board"
	DefaultTodoName  = "New todo"
)

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	DefaultBoards []string
}

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service owns boards and their ordered to-do lists.
type Service struct {
	repo          Repository
	idGen         IDGenerator
	clock         Clock
	defaultBoards []string
}

// BoardTodos pairs one board with its ordered to-dos.
type BoardTodos struct {
	Board domain.Board
	Todos []domain.Todo
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	defaults := sanitizeBoardNames(cfg.DefaultBoards)
	if len(defaults) == 0 {
		defaults = []string{"To Do", "Doing", "Done"}
	}

	return &Service{
		repo:          repo,
		idGen:         idGen,
		clock:         clock,
		defaultBoards: defaults,
	}
}

// EnsureDefaultBoards creates the configured starter boards when none exist.
func (s *Service) EnsureDefaultBoards(ctx context.Context) ([]domain.Board, error) {
	boards, err := s.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	if len(boards) > 0 {
		return boards, nil
	}

	now := s.clock()
	out := make([]domain.Board, 0, len(s.defaultBoards))
	for idx, name := range s.defaultBoards {
		board, err := domain.NewBoard(s.idGen(), name, idx, now)
		if err != nil {
			return nil, fmt.Errorf("create default board %q: %w", name, err)
		}
		if err := s.repo.CreateBoard(ctx, board); err != nil {
			return nil, fmt.Errorf("persist default board %q: %w", name, err)
		}
		out = append(out, board)
	}
	return out, nil
}

// CreateBoard appends a new board after the existing ones.
func (s *Service) CreateBoard(ctx context.Context, name string) (domain.Board, error) {
	boards, err := s.repo.ListBoards(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	position := 0
	for _, b := range boards {
		if b.Position >= position {
			position = b.Position + 1
		}
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultBoardName
	}

	board, err := domain.NewBoard(s.idGen(), name, position, s.clock())
	if err != nil {
		return domain.Board{}, err
	}
	if err := s.repo.CreateBoard(ctx, board); err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

// RenameBoard renames board.
func (s *Service) RenameBoard(ctx context.Context, boardID, name string) (domain.Board, error) {
	board, err := s.repo.GetBoard(ctx, boardID)
	if err != nil {
		return domain.Board{}, err
	}
	if err := board.Rename(name, s.clock()); err != nil {
		return domain.Board{}, err
	}
	if err := s.repo.UpdateBoard(ctx, board); err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

// DeleteBoard removes a board with its to-dos and closes the gap it leaves.
func (s *Service) DeleteBoard(ctx context.Context, boardID string) error {
	if err := s.repo.DeleteBoard(ctx, boardID); err != nil {
		return err
	}
	boards, err := s.ListBoards(ctx)
	if err != nil {
		return err
	}
	now := s.clock()
	for idx, board := range boards {
		if board.Position == idx {
			continue
		}
		if err := board.SetPosition(idx, now); err != nil {
			return err
		}
		if err := s.repo.UpdateBoard(ctx, board); err != nil {
			return fmt.Errorf("compact board positions: %w", err)
		}
	}
	return nil
}

// ListBoards lists boards in display order.
func (s *Service) ListBoards(ctx context.Context) ([]domain.Board, error) {
	boards, err := s.repo.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(boards, func(a, b domain.Board) int {
		if a.Position == b.Position {
			return strings.Compare(a.ID, b.ID)
		}
		return a.Position - b.Position
	})
	return boards, nil
}

// CreateTodo appends a to-do at the end of its board.
func (s *Service) CreateTodo(ctx context.Context, boardID, name string) (domain.Todo, error) {
	if _, err := s.repo.GetBoard(ctx, boardID); err != nil {
		return domain.Todo{}, err
	}
	todos, err := s.repo.ListTodos(ctx, boardID)
	if err != nil {
		return domain.Todo{}, err
	}
	position := 0
	for _, t := range todos {
		if t.Position >= position {
			position = t.Position + 1
		}
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultTodoName
	}

	todo, err := domain.NewTodo(domain.TodoInput{
		ID:       s.idGen(),
		BoardID:  boardID,
		Name:     name,
		Position: position,
	}, s.clock())
	if err != nil {
		return domain.Todo{}, err
	}
	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// RenameTodo renames todo.
func (s *Service) RenameTodo(ctx context.Context, todoID, name string) (domain.Todo, error) {
	todo, err := s.repo.GetTodo(ctx, todoID)
	if err != nil {
		return domain.Todo{}, err
	}
	if err := todo.Rename(name, s.clock()); err != nil {
		return domain.Todo{}, err
	}
	if err := s.repo.UpdateTodo(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

// DeleteTodo removes a to-do and renumbers the rest of its board.
func (s *Service) DeleteTodo(ctx context.Context, todoID string) error {
	todo, err := s.repo.GetTodo(ctx, todoID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTodo(ctx, todoID); err != nil {
		return err
	}
	remaining, err := s.ListTodos(ctx, todo.BoardID)
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceTodoOrder(ctx, todo.BoardID, domain.TodoIDs(remaining), s.clock()); err != nil {
		return fmt.Errorf("compact todo positions: %w", err)
	}
	return nil
}

// ListTodos lists one board's to-dos in display order.
func (s *Service) ListTodos(ctx context.Context, boardID string) ([]domain.Todo, error) {
	todos, err := s.repo.ListTodos(ctx, boardID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(todos, func(a, b domain.Todo) int {
		if a.Position == b.Position {
			return strings.Compare(a.ID, b.ID)
		}
		return a.Position - b.Position
	})
	return todos, nil
}

// BoardView loads every board with its ordered to-dos.
func (s *Service) BoardView(ctx context.Context) ([]BoardTodos, error) {
	boards, err := s.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BoardTodos, 0, len(boards))
	for _, board := range boards {
		todos, err := s.ListTodos(ctx, board.ID)
		if err != nil {
			return nil, fmt.Errorf("list todos for board %q: %w", board.ID, err)
		}
		out = append(out, BoardTodos{Board: board, Todos: todos})
	}
	return out, nil
}

// SetBoardTodos replaces a board's order wholesale.
//
// ordered must hold exactly the board's current to-do ids. Anything else is rejected with
// ErrOrderMismatch and nothing is written.
func (s *Service) SetBoardTodos(ctx context.Context, boardID string, ordered []domain.Todo) ([]domain.Todo, error) {
	boardID = strings.TrimSpace(boardID)
	if boardID == "" {
		return nil, domain.ErrInvalidBoardID
	}
	current, err := s.ListTodos(ctx, boardID)
	if err != nil {
		return nil, err
	}
	ids := domain.TodoIDs(ordered)
	if !sameIDSet(domain.TodoIDs(current), ids) {
		return nil, fmt.Errorf("%w: board %q", ErrOrderMismatch, boardID)
	}
	if err := s.repo.ReplaceTodoOrder(ctx, boardID, ids, s.clock()); err != nil {
		return nil, err
	}
	return s.ListTodos(ctx, boardID)
}

// sameIDSet reports whether a and b hold the same ids with no duplicates.
func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

// sanitizeBoardNames trims names and drops blanks and duplicates.
func sanitizeBoardNames(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, raw := range in {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
