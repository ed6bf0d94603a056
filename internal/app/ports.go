package app

import (
	"context"
	"time"

	"github.com/evanschultz/todoboard/internal/domain"
)

// Repository is the persistence port for boards and their to-dos.
type Repository interface {
	CreateBoard(context.Context, domain.Board) error
	UpdateBoard(context.Context, domain.Board) error
	GetBoard(context.Context, string) (domain.Board, error)
	ListBoards(context.Context) ([]domain.Board, error)
	DeleteBoard(context.Context, string) error

	CreateTodo(context.Context, domain.Todo) error
	UpdateTodo(context.Context, domain.Todo) error
	GetTodo(context.Context, string) (domain.Todo, error)
	ListTodos(context.Context, string) ([]domain.Todo, error)
	DeleteTodo(context.Context, string) error
	// ReplaceTodoOrder rewrites every position of one board in a single transaction.
	ReplaceTodoOrder(context.Context, string, []string, time.Time) error
}
