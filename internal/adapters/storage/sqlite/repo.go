package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanschultz/todoboard/internal/app"
	"github.com/evanschultz/todoboard/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository represents repository data used by this package.
type Repository struct {
	db *sql.DB
}

// Open opens the requested operation.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return newRepository(db)
}

// OpenInMemory opens a private in-memory database.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	return newRepository(db)
}

// newRepository pins the pool to one connection so per-connection pragmas and
// in-memory databases stay consistent, then migrates.
func newRepository(db *sql.DB) (*Repository, error) {
	db.SetMaxOpenConns(1)
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the requested operation.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate handles migrate.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS boards (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			board_id TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(board_id) REFERENCES boards(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_board_position ON todos(board_id, position);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// CreateBoard creates board.
func (r *Repository) CreateBoard(ctx context.Context, b domain.Board) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO boards(id, name, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.Position, ts(b.CreatedAt), ts(b.UpdatedAt))
	return err
}

// UpdateBoard updates state for the requested operation.
func (r *Repository) UpdateBoard(ctx context.Context, b domain.Board) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE boards
		SET name = ?, position = ?, updated_at = ?
		WHERE id = ?
	`, b.Name, b.Position, ts(b.UpdatedAt), b.ID)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetBoard returns board.
func (r *Repository) GetBoard(ctx context.Context, id string) (domain.Board, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, position, created_at, updated_at
		FROM boards
		WHERE id = ?
	`, id)
	return scanBoard(row)
}

// ListBoards lists boards.
func (r *Repository) ListBoards(ctx context.Context) ([]domain.Board, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, position, created_at, updated_at
		FROM boards
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Board{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, board)
	}
	return out, rows.Err()
}

// DeleteBoard deletes a board; its todos go with it through the foreign key.
func (r *Repository) DeleteBoard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// CreateTodo creates todo.
func (r *Repository) CreateTodo(ctx context.Context, t domain.Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos(id, board_id, name, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.BoardID, t.Name, t.Position, ts(t.CreatedAt), ts(t.UpdatedAt))
	return err
}

// UpdateTodo updates state for the requested operation.
func (r *Repository) UpdateTodo(ctx context.Context, t domain.Todo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET board_id = ?, name = ?, position = ?, updated_at = ?
		WHERE id = ?
	`, t.BoardID, t.Name, t.Position, ts(t.UpdatedAt), t.ID)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// GetTodo returns todo.
func (r *Repository) GetTodo(ctx context.Context, id string) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, board_id, name, position, created_at, updated_at
		FROM todos
		WHERE id = ?
	`, id)
	return scanTodo(row)
}

// ListTodos lists todos.
func (r *Repository) ListTodos(ctx context.Context, boardID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, board_id, name, position, created_at, updated_at
		FROM todos
		WHERE board_id = ?
		ORDER BY position ASC, id ASC
	`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

// DeleteTodo deletes todo.
func (r *Repository) DeleteTodo(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

// ReplaceTodoOrder writes position = index for every id in one transaction.
// An id that is missing or belongs to another board rolls the whole write back.
func (r *Repository) ReplaceTodoOrder(ctx context.Context, boardID string, ids []string, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE todos
		SET position = ?, updated_at = ?
		WHERE id = ? AND board_id = ?
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	updatedAt := ts(now)
	for idx, id := range ids {
		var res sql.Result
		res, err = stmt.ExecContext(ctx, idx, updatedAt, id, boardID)
		if err != nil {
			return err
		}
		if err = translateNoRows(res); err != nil {
			return fmt.Errorf("reorder todo %q: %w", id, err)
		}
	}

	err = tx.Commit()
	return err
}

// scanner represents scanner data used by this package.
type scanner interface {
	Scan(dest ...any) error
}

// scanBoard handles scan board.
func scanBoard(s scanner) (domain.Board, error) {
	var (
		b          domain.Board
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&b.ID, &b.Name, &b.Position, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, app.ErrNotFound
		}
		return domain.Board{}, err
	}
	b.CreatedAt = parseTS(createdRaw)
	b.UpdatedAt = parseTS(updatedRaw)
	return b, nil
}

// scanTodo handles scan todo.
func scanTodo(s scanner) (domain.Todo, error) {
	var (
		t          domain.Todo
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&t.ID, &t.BoardID, &t.Name, &t.Position, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Todo{}, app.ErrNotFound
		}
		return domain.Todo{}, err
	}
	t.CreatedAt = parseTS(createdRaw)
	t.UpdatedAt = parseTS(updatedRaw)
	return t, nil
}

// translateNoRows handles translate no rows.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// ts handles ts.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTS parses input into a normalized form.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
