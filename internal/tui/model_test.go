package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/evanschultz/todoboard/internal/app"
	"github.com/evanschultz/todoboard/internal/domain"
)

// fakeService represents fake service data used by this package.
type fakeService struct {
	boards   []app.BoardTodos
	nextID   int
	orderErr error
	orders   [][]string
	deleted  []string
}

// newFakeService constructs fake service.
func newFakeService(boards ...app.BoardTodos) *fakeService {
	return &fakeService{boards: boards}
}

// testBoard builds a board with todos named by names; todo ids are boardID-name.
func testBoard(t *testing.T, boardID, name string, position int, names ...string) app.BoardTodos {
	t.Helper()
	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	board, err := domain.NewBoard(boardID, name, position, now)
	if err != nil {
		t.Fatalf("NewBoard() error = %v", err)
	}
	todos := make([]domain.Todo, 0, len(names))
	for idx, todoName := range names {
		todo, err := domain.NewTodo(domain.TodoInput{
			ID:       boardID + "-" + todoName,
			BoardID:  boardID,
			Name:     todoName,
			Position: idx,
		}, now)
		if err != nil {
			t.Fatalf("NewTodo() error = %v", err)
		}
		todos = append(todos, todo)
	}
	return app.BoardTodos{Board: board, Todos: todos}
}

func (f *fakeService) BoardView(context.Context) ([]app.BoardTodos, error) {
	out := make([]app.BoardTodos, 0, len(f.boards))
	for _, b := range f.boards {
		out = append(out, app.BoardTodos{Board: b.Board, Todos: slices.Clone(b.Todos)})
	}
	return out, nil
}

func (f *fakeService) CreateBoard(_ context.Context, name string) (domain.Board, error) {
	f.nextID++
	board, err := domain.NewBoard(fmt.Sprintf("b-new-%d", f.nextID), name, len(f.boards), time.Now())
	if err != nil {
		return domain.Board{}, err
	}
	f.boards = append(f.boards, app.BoardTodos{Board: board})
	return board, nil
}

func (f *fakeService) RenameBoard(_ context.Context, boardID, name string) (domain.Board, error) {
	for idx := range f.boards {
		if f.boards[idx].Board.ID == boardID {
			if err := f.boards[idx].Board.Rename(name, time.Now()); err != nil {
				return domain.Board{}, err
			}
			return f.boards[idx].Board, nil
		}
	}
	return domain.Board{}, app.ErrNotFound
}

func (f *fakeService) DeleteBoard(_ context.Context, boardID string) error {
	for idx := range f.boards {
		if f.boards[idx].Board.ID == boardID {
			f.boards = slices.Delete(f.boards, idx, idx+1)
			f.deleted = append(f.deleted, boardID)
			return nil
		}
	}
	return app.ErrNotFound
}

func (f *fakeService) CreateTodo(_ context.Context, boardID, name string) (domain.Todo, error) {
	for idx := range f.boards {
		if f.boards[idx].Board.ID != boardID {
			continue
		}
		if strings.TrimSpace(name) == "" {
			name = app.DefaultTodoName
		}
		f.nextID++
		todo, err := domain.NewTodo(domain.TodoInput{
			ID:       fmt.Sprintf("t-new-%d", f.nextID),
			BoardID:  boardID,
			Name:     name,
			Position: len(f.boards[idx].Todos),
		}, time.Now())
		if err != nil {
			return domain.Todo{}, err
		}
		f.boards[idx].Todos = append(f.boards[idx].Todos, todo)
		return todo, nil
	}
	return domain.Todo{}, app.ErrNotFound
}

func (f *fakeService) RenameTodo(_ context.Context, todoID, name string) (domain.Todo, error) {
	for bIdx := range f.boards {
		for tIdx := range f.boards[bIdx].Todos {
			todo := &f.boards[bIdx].Todos[tIdx]
			if todo.ID == todoID {
				if err := todo.Rename(name, time.Now()); err != nil {
					return domain.Todo{}, err
				}
				return *todo, nil
			}
		}
	}
	return domain.Todo{}, app.ErrNotFound
}

func (f *fakeService) DeleteTodo(_ context.Context, todoID string) error {
	for bIdx := range f.boards {
		for tIdx := range f.boards[bIdx].Todos {
			if f.boards[bIdx].Todos[tIdx].ID == todoID {
				f.boards[bIdx].Todos = domain.Positions(slices.Delete(f.boards[bIdx].Todos, tIdx, tIdx+1))
				f.deleted = append(f.deleted, todoID)
				return nil
			}
		}
	}
	return app.ErrNotFound
}

func (f *fakeService) SetBoardTodos(_ context.Context, boardID string, ordered []domain.Todo) ([]domain.Todo, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	for idx := range f.boards {
		if f.boards[idx].Board.ID == boardID {
			f.boards[idx].Todos = domain.Positions(ordered)
			f.orders = append(f.orders, domain.TodoIDs(ordered))
			return slices.Clone(f.boards[idx].Todos), nil
		}
	}
	return nil, app.ErrNotFound
}

// newBoardFixture returns a service with three boards, the first holding A, B and C.
func newBoardFixture(t *testing.T) *fakeService {
	t.Helper()
	return newFakeService(
		testBoard(t, "b1", "To Do", 0, "A", "B", "C"),
		testBoard(t, "b2", "Doing", 1, "D"),
		testBoard(t, "b3", "Done", 2),
	)
}

// TestModelLoadAndNavigation verifies behavior for the covered scenario.
func TestModelLoadAndNavigation(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))
	if len(m.boards) != 3 {
		t.Fatalf("expected 3 boards, got %d", len(m.boards))
	}
	if m.status != "ready" {
		t.Fatalf("expected ready status, got %q", m.status)
	}

	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('j'))
	if m.selectedTodo != 2 {
		t.Fatalf("expected selection clamped at last todo, got %d", m.selectedTodo)
	}
	m = applyMsg(t, m, keyRune('k'))
	if todo, _ := m.currentTodo(); todo.Name != "B" {
		t.Fatalf("expected B selected, got %q", todo.Name)
	}

	m = applyMsg(t, m, keyRune('l'))
	if m.selectedBoard != 1 || m.selectedTodo != 0 {
		t.Fatalf("expected board 1 todo 0, got %d/%d", m.selectedBoard, m.selectedTodo)
	}
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('l'))
	if m.selectedBoard != 2 {
		t.Fatalf("expected last board, got %d", m.selectedBoard)
	}
	if _, ok := m.currentTodo(); ok {
		t.Fatal("expected no todo on the empty board")
	}
	m = applyMsg(t, m, keyRune('h'))
	if board, _ := m.currentBoard(); board.Name != "Doing" {
		t.Fatalf("expected Doing, got %q", board.Name)
	}
}

// TestModelMouseDragToHeaderMovesFirst verifies behavior for the covered scenario.
func TestModelMouseDragToHeaderMovesFirst(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	x, y := todoCell(m, 0, 1)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if m.dragBoardID != "b1" || !m.engine("b1").IsDragging("b1-B") {
		t.Fatalf("expected B dragging on b1, got board %q", m.dragBoardID)
	}
	hx, hy := headerCell(m, 0)
	m = applyMsg(t, m, tea.MouseMotionMsg{X: hx, Y: hy, Button: tea.MouseLeft})
	if hover, ok := m.engine("b1").Hover(); !ok || hover != -1 {
		t.Fatalf("expected header hover -1, got %d (%t)", hover, ok)
	}
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: hx, Y: hy, Button: tea.MouseLeft})

	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"B", "A", "C"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if len(svc.orders) != 1 || !slices.Equal(svc.orders[0], []string{"b1-B", "b1-A", "b1-C"}) {
		t.Fatalf("expected one published order, got %#v", svc.orders)
	}
	if m.engine("b1").Active() || m.dragBoardID != "" {
		t.Fatal("expected drag state cleared after drop")
	}
	if todo, _ := m.currentTodo(); todo.ID != "b1-B" {
		t.Fatalf("expected dropped todo selected, got %q", todo.ID)
	}
}

// TestModelMouseDragToTrailingAreaMovesLast verifies behavior for the covered scenario.
func TestModelMouseDragToTrailingAreaMovesLast(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	x, y := todoCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	tx, ty := todoCell(m, 0, 3)
	m = applyMsg(t, m, tea.MouseMotionMsg{X: tx, Y: ty})
	if hover, _ := m.engine("b1").Hover(); hover != 3 {
		t.Fatalf("expected trailing hover 3, got %d", hover)
	}
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: tx, Y: ty})

	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}
	for idx, todo := range m.boards[0].Todos {
		if todo.Position != idx {
			t.Fatalf("expected position %d for %s, got %d", idx, todo.Name, todo.Position)
		}
	}
}

// TestModelMouseDropOnRow verifies behavior for the covered scenario.
func TestModelMouseDropOnRow(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	x, y := todoCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	cx, cy := todoCell(m, 0, 2)
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: cx, Y: cy})
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}

	// the engine reports a change for a drop on the item's own row; the view compares
	// ids and skips publishing an identical order.
	bx, by := todoCell(m, 0, 1)
	m = applyMsg(t, m, tea.MouseClickMsg{X: bx, Y: by, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: bx, Y: by})
	if m.status != "order unchanged" {
		t.Fatalf("expected unchanged status, got %q", m.status)
	}
	if len(svc.orders) != 1 {
		t.Fatalf("expected a single publish, got %d", len(svc.orders))
	}
}

// TestModelMouseReleaseOutsideCancels verifies behavior for the covered scenario.
func TestModelMouseReleaseOutsideCancels(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	x, y := todoCell(m, 0, 1)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	hx, hy := headerCell(m, 0)
	m = applyMsg(t, m, tea.MouseMotionMsg{X: hx, Y: hy})

	// release over another board is outside the drag's droppable region.
	ox, oy := todoCell(m, 1, 0)
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: ox, Y: oy})
	if m.status != "drag cancelled" {
		t.Fatalf("expected cancelled status, got %q", m.status)
	}
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("expected unchanged order, got %v", got)
	}
	if len(svc.orders) != 0 || m.engine("b1").Active() {
		t.Fatal("expected no publish and idle engine after cancel")
	}

	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: 0, Y: 0})
	if m.engine("b1").Active() {
		t.Fatal("expected release on the title line to cancel")
	}
}

// TestModelMouseMotionIgnoresOtherBoards verifies behavior for the covered scenario.
func TestModelMouseMotionIgnoresOtherBoards(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))

	x, y := todoCell(m, 0, 2)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	hx, hy := headerCell(m, 1)
	m = applyMsg(t, m, tea.MouseMotionMsg{X: hx, Y: hy})
	if _, ok := m.engine("b1").Hover(); ok {
		t.Fatal("expected hover unset while pointer is over another board")
	}
	if m.engine("b2").Active() {
		t.Fatal("expected other board engine idle")
	}
}

// TestModelKeyboardGrab verifies behavior for the covered scenario.
func TestModelKeyboardGrab(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if m.mode != modeGrab {
		t.Fatalf("expected grab mode, got %v", m.mode)
	}
	if hover, _ := m.engine("b1").Hover(); hover != 1 {
		t.Fatalf("expected hover at grabbed index, got %d", hover)
	}
	m = applyMsg(t, m, keyRune('k'))
	m = applyMsg(t, m, keyRune('k'))
	m = applyMsg(t, m, keyRune('k'))
	if hover, _ := m.engine("b1").Hover(); hover != -1 {
		t.Fatalf("expected hover clamped to -1, got %d", hover)
	}
	if !strings.Contains(stripView(m), "move") {
		t.Fatal("expected move mode label in view")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNone {
		t.Fatalf("expected normal mode after drop, got %v", m.mode)
	}
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"B", "A", "C"}) {
		t.Fatalf("unexpected order %v", got)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	for range 5 {
		m = applyMsg(t, m, keyRune('j'))
	}
	if hover, _ := m.engine("b1").Hover(); hover != 3 {
		t.Fatalf("expected hover clamped to length, got %d", hover)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone || m.engine("b1").Active() {
		t.Fatal("expected esc to cancel the grab")
	}
	if len(svc.orders) != 1 {
		t.Fatalf("expected one publish, got %d", len(svc.orders))
	}
}

// TestModelReorderFailureReloads verifies behavior for the covered scenario.
func TestModelReorderFailureReloads(t *testing.T) {
	svc := newBoardFixture(t)
	svc.orderErr = errors.New("disk full")
	var events []string
	m := loadReadyModel(t, NewModel(svc, WithEventLog(func(msg string, _ ...any) {
		events = append(events, msg)
	})))

	x, y := todoCell(m, 0, 2)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	hx, hy := headerCell(m, 0)
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: hx, Y: hy})

	if !strings.Contains(m.status, "reorder failed: disk full") {
		t.Fatalf("expected failure status, got %q", m.status)
	}
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("expected reloaded order, got %v", got)
	}
	if !slices.Contains(events, "todo order save failed") {
		t.Fatalf("expected failure event, got %v", events)
	}
}

// TestModelOrderSavedLogsEvent verifies behavior for the covered scenario.
func TestModelOrderSavedLogsEvent(t *testing.T) {
	var events []string
	m := loadReadyModel(t, NewModel(newBoardFixture(t), WithEventLog(func(msg string, _ ...any) {
		events = append(events, msg)
	})))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if !slices.Contains(events, "todo order saved") {
		t.Fatalf("expected saved event, got %v", events)
	}
}

// TestModelGrabCancelsDragOnOtherBoard verifies only one board holds a drag at a time.
func TestModelGrabCancelsDragOnOtherBoard(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	x, y := todoCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if !m.engine("b1").IsDragging("b1-A") {
		t.Fatal("expected mouse drag on b1")
	}
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if m.dragBoardID != "b2" || m.mode != modeGrab {
		t.Fatalf("expected keyboard grab on b2, got board %q mode %v", m.dragBoardID, m.mode)
	}
	if m.engine("b1").Active() {
		t.Fatal("expected b1 drag to be cancelled when b2 grabs")
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.dragBoardID != "" || m.engine("b1").Active() || m.engine("b2").Active() {
		t.Fatal("expected no drag left after esc")
	}
	if strings.Contains(stripView(m), "drop here") {
		t.Fatal("expected no drop area after the grab ends")
	}
	if len(svc.orders) != 0 {
		t.Fatalf("expected no publish, got %v", svc.orders)
	}
}

// TestModelMouseClickCancelsDragOnOtherBoard verifies behavior for the covered scenario.
func TestModelMouseClickCancelsDragOnOtherBoard(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))

	x, y := todoCell(m, 0, 1)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	x, y = todoCell(m, 1, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if m.dragBoardID != "b2" || !m.engine("b2").IsDragging("b2-D") {
		t.Fatalf("expected drag on b2, got %q", m.dragBoardID)
	}
	if m.engine("b1").Active() {
		t.Fatal("expected the b1 drag to be cancelled")
	}
}

// TestModelOrderSavesRunOneAtATime verifies a drop made while a save is in flight is persisted last.
func TestModelOrderSavesRunOneAtATime(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))
	enter := tea.KeyPressMsg{Code: tea.KeyEnter}
	space := tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}

	m = applyMsg(t, m, space)
	for range 3 {
		m = applyMsg(t, m, keyRune('j'))
	}
	updated, firstSave := m.Update(enter)
	m = updated.(Model)
	if firstSave == nil {
		t.Fatal("expected a save command for the first drop")
	}

	m = applyMsg(t, m, space)
	for range 3 {
		m = applyMsg(t, m, keyRune('k'))
	}
	updated, secondSave := m.Update(enter)
	m = updated.(Model)
	if secondSave != nil {
		t.Fatal("expected the second save to wait for the first")
	}
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected order after second drop %v", got)
	}

	// the first save finishes after the user already dropped again.
	updated, followUp := m.Update(firstSave())
	m = updated.(Model)
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("expected the older save result to be ignored, got %v", got)
	}
	if followUp == nil {
		t.Fatal("expected a follow-up save of the latest order")
	}
	m = applyCmd(t, m, followUp)

	want := [][]string{{"b1-B", "b1-C", "b1-A"}, {"b1-A", "b1-B", "b1-C"}}
	if fmt.Sprint(svc.orders) != fmt.Sprint(want) {
		t.Fatalf("unexpected persisted orders %v", svc.orders)
	}
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected final order %v", got)
	}
	if len(m.orderSaves) != 0 {
		t.Fatalf("expected no pending saves, got %v", m.orderSaves)
	}
}

// TestModelTodoCRUD verifies behavior for the covered scenario.
func TestModelTodoCRUD(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('n'))
	if m.mode != modeAddTodo {
		t.Fatalf("expected add todo mode, got %v", m.mode)
	}
	m = typeText(t, m, "Milk")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C", "Milk"}) {
		t.Fatalf("unexpected todos after add %v", got)
	}
	if todo, _ := m.currentTodo(); todo.Name != "Milk" {
		t.Fatalf("expected new todo focused, got %q", todo.Name)
	}

	m = applyMsg(t, m, keyRune('r'))
	if m.mode != modeRenameTodo || m.input.Value() != "Milk" {
		t.Fatalf("expected rename prompt prefilled, got %v %q", m.mode, m.input.Value())
	}
	m.input.SetValue("Oat milk")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if todo, _ := m.currentTodo(); todo.Name != "Oat milk" {
		t.Fatalf("expected renamed todo, got %q", todo.Name)
	}

	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	if !strings.Contains(stripView(m), `Delete todo "Oat milk"?`) {
		t.Fatal("expected confirm prompt in view")
	}
	m = applyMsg(t, m, keyRune('n'))
	if len(svc.deleted) != 0 {
		t.Fatal("expected n to keep the todo")
	}
	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected todos after delete %v", got)
	}
}

// TestModelAddTodoBlankNameUsesDefault verifies behavior for the covered scenario.
func TestModelAddTodoBlankNameUsesDefault(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := todoNames(m.boards[2].Todos); !slices.Equal(got, []string{app.DefaultTodoName}) {
		t.Fatalf("expected default-named todo, got %v", got)
	}
}

// TestModelInputEscCancels verifies behavior for the covered scenario.
func TestModelInputEscCancels(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))
	m = applyMsg(t, m, keyRune('r'))
	m = typeText(t, m, "zzz")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone || m.status != "cancelled" {
		t.Fatalf("expected cancelled input, got %v %q", m.mode, m.status)
	}
	if got := todoNames(svc.boards[0].Todos); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("expected unchanged todos, got %v", got)
	}
}

// TestModelDeleteWithoutConfirm verifies behavior for the covered scenario.
func TestModelDeleteWithoutConfirm(t *testing.T) {
	svc := newBoardFixture(t)
	cfg := DefaultRuntimeConfig()
	cfg.ConfirmDelete = false
	m := loadReadyModel(t, NewModel(svc, WithRuntimeConfig(cfg)))

	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeNone {
		t.Fatalf("expected immediate delete, got mode %v", m.mode)
	}
	if !slices.Equal(svc.deleted, []string{"b1-A"}) {
		t.Fatalf("expected A deleted, got %v", svc.deleted)
	}
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"B", "C"}) {
		t.Fatalf("unexpected todos %v", got)
	}
}

// TestModelBoardCRUD verifies behavior for the covered scenario.
func TestModelBoardCRUD(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'N', Text: "N"})
	if m.mode != modeAddBoard {
		t.Fatalf("expected add board mode, got %v", m.mode)
	}
	m = typeText(t, m, "Later")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(m.boards) != 4 || m.boards[3].Board.Name != "Later" {
		t.Fatalf("expected Later board appended, got %d boards", len(m.boards))
	}
	if m.selectedBoard != 3 {
		t.Fatalf("expected new board selected, got %d", m.selectedBoard)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'R', Text: "R"})
	m.input.SetValue("Someday")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if board, _ := m.currentBoard(); board.Name != "Someday" {
		t.Fatalf("expected renamed board, got %q", board.Name)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'X', Text: "X"})
	if !strings.Contains(stripView(m), "Its todos are deleted too.") {
		t.Fatal("expected board delete warning")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(m.boards) != 3 {
		t.Fatalf("expected board removed, got %d", len(m.boards))
	}
	if m.selectedBoard != 2 {
		t.Fatalf("expected selection clamped, got %d", m.selectedBoard)
	}
}

// TestModelBoardMenu verifies behavior for the covered scenario.
func TestModelBoardMenu(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))

	m = applyMsg(t, m, keyRune('m'))
	if m.mode != modeBoardMenu {
		t.Fatalf("expected board menu, got %v", m.mode)
	}
	if !strings.Contains(stripView(m), "Rename board") {
		t.Fatal("expected menu items in view")
	}
	m = applyMsg(t, m, keyRune('k'))
	if m.menuIndex != menuDeleteBoard {
		t.Fatalf("expected wrap to last item, got %d", m.menuIndex)
	}
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeRenameBoard || m.input.Value() != "To Do" {
		t.Fatalf("expected rename board prompt, got %v %q", m.mode, m.input.Value())
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = applyMsg(t, m, keyRune('m'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected menu closed, got %v", m.mode)
	}
}

// TestModelHeaderControlsByMouse verifies behavior for the covered scenario.
func TestModelHeaderControlsByMouse(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))
	lay := m.layout()
	_, y := headerCell(m, 1)
	left := lay.outerWidth + 2

	menu := applyMsg(t, m, tea.MouseClickMsg{X: left + lay.innerWidth - 1, Y: y, Button: tea.MouseLeft})
	if menu.mode != modeBoardMenu || menu.selectedBoard != 1 {
		t.Fatalf("expected menu on board 1, got %v board %d", menu.mode, menu.selectedBoard)
	}

	add := applyMsg(t, m, tea.MouseClickMsg{X: left + lay.innerWidth - 3, Y: y, Button: tea.MouseLeft})
	if add.mode != modeAddTodo || add.selectedBoard != 1 {
		t.Fatalf("expected add todo on board 1, got %v board %d", add.mode, add.selectedBoard)
	}
}

// TestModelMouseWheel verifies behavior for the covered scenario.
func TestModelMouseWheel(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))
	x, y := todoCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelDown})
	m = applyMsg(t, m, tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelDown})
	if m.selectedTodo != 2 {
		t.Fatalf("expected wheel down to select C, got %d", m.selectedTodo)
	}
	m = applyMsg(t, m, tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelUp})
	if m.selectedTodo != 1 {
		t.Fatalf("expected wheel up to select B, got %d", m.selectedTodo)
	}
}

// TestModelCopyTodo verifies behavior for the covered scenario.
func TestModelCopyTodo(t *testing.T) {
	var copied string
	m := loadReadyModel(t, NewModel(newBoardFixture(t), WithClipboard(func(s string) error {
		copied = s
		return nil
	})))
	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune('y'))
	if copied != "B" || m.status != `copied "B"` {
		t.Fatalf("expected B copied, got %q status %q", copied, m.status)
	}

	failing := loadReadyModel(t, NewModel(newBoardFixture(t), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	})))
	failing = applyMsg(t, failing, keyRune('y'))
	if failing.status != "copy failed: no clipboard" {
		t.Fatalf("unexpected status %q", failing.status)
	}
}

// TestModelConfiguredKeys verifies behavior for the covered scenario.
func TestModelConfiguredKeys(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Keys = KeyConfig{Grab: "g", BoardMenu: "M", Copy: "c"}
	m := loadReadyModel(t, NewModel(newBoardFixture(t), WithRuntimeConfig(cfg)))

	m = applyMsg(t, m, keyRune('g'))
	if m.mode != modeGrab {
		t.Fatalf("expected g to grab, got %v", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'M', Text: "M"})
	if m.mode != modeBoardMenu {
		t.Fatalf("expected M to open the board menu, got %v", m.mode)
	}
}

// TestModelViewStates verifies behavior for the covered scenario.
func TestModelViewStates(t *testing.T) {
	m := NewModel(newBoardFixture(t))
	if v := m.View(); v.Content == nil || v.MouseMode != tea.MouseModeCellMotion || !v.AltScreen {
		t.Fatal("expected alt screen view with cell motion mouse mode")
	}
	if got := m.renderContent(); !strings.Contains(got, "loading") {
		t.Fatalf("expected loading view, got %q", got)
	}

	m = loadReadyModel(t, m)
	out := stripView(m)
	for _, want := range []string{"todoboard", "To Do 3", "Doing 1", "Done 0", "(empty)", "+ ⋮"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}

	cfg := DefaultRuntimeConfig()
	cfg.ShowCounts = false
	hidden := loadReadyModel(t, NewModel(newBoardFixture(t), WithRuntimeConfig(cfg)))
	if strings.Contains(stripView(hidden), "To Do 3") {
		t.Fatal("expected counts hidden")
	}

	x, y := todoCell(m, 0, 0)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if !strings.Contains(stripView(m), "drop here") {
		t.Fatal("expected drop area while dragging")
	}

	empty := loadReadyModel(t, NewModel(newFakeService()))
	if !strings.Contains(stripView(empty), "No boards yet.") {
		t.Fatal("expected empty state")
	}

	m.err = errors.New("boom")
	if got := m.renderContent(); !strings.Contains(got, "error: boom") {
		t.Fatalf("expected error view, got %q", got)
	}
}

// TestModelHelpOverlay verifies behavior for the covered scenario.
func TestModelHelpOverlay(t *testing.T) {
	m := loadReadyModel(t, NewModel(newBoardFixture(t)))
	m = applyMsg(t, m, keyRune('?'))
	if !m.showHelp {
		t.Fatal("expected help overlay")
	}
	if !strings.Contains(stripView(m), "todoboard help") {
		t.Fatal("expected help title")
	}
	md := m.helpMarkdown()
	for _, want := range []string{"Moving todos", "`space` grab todo", "`m` board menu"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in help markdown:\n%s", want, md)
		}
	}
	m = applyMsg(t, m, keyRune('j'))
	if m.selectedTodo != 0 {
		t.Fatal("expected keys swallowed while help is open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.showHelp {
		t.Fatal("expected esc to close help")
	}
}

// TestModelExternalReloadKeepsDrag verifies behavior for the covered scenario.
func TestModelExternalReloadKeepsDrag(t *testing.T) {
	svc := newBoardFixture(t)
	m := loadReadyModel(t, NewModel(svc))

	x, y := todoCell(m, 0, 2)
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})

	// the list owner renames C while the drag is in flight.
	if _, err := svc.RenameTodo(context.Background(), "b1-C", "C2"); err != nil {
		t.Fatalf("RenameTodo() error = %v", err)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if !m.engine("b1").Active() {
		t.Fatal("expected drag to survive a reload")
	}
	hx, hy := headerCell(m, 0)
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: hx, Y: hy})
	if got := todoNames(m.boards[0].Todos); !slices.Equal(got, []string{"C2", "A", "B"}) {
		t.Fatalf("expected renamed item moved first, got %v", got)
	}
}

// TestHelpers verifies behavior for the covered scenario.
func TestHelpers(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := truncate("ab", 4); got != "ab" {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("unexpected truncate %q", got)
	}
	if got := fitLines("a\nb\nc", 2); got != "a\n…" {
		t.Fatalf("unexpected fitLines %q", got)
	}
	if got := fitLines("a", 3); got != "a\n\n" {
		t.Fatalf("unexpected fitLines %q", got)
	}
	if got := wrapIndex(0, -1, 3); got != 2 {
		t.Fatalf("unexpected wrapIndex %d", got)
	}
	if got := clamp(5, 0, 2); got != 2 {
		t.Fatalf("unexpected clamp %d", got)
	}
	if got := clamp(1, 0, -1); got != 0 {
		t.Fatalf("unexpected clamp %d", got)
	}
	if hover, ok := (boardHit{kind: hitMenu}).hoverIndex(); !ok || hover != -1 {
		t.Fatalf("expected header controls to hover before first, got %d", hover)
	}
	if _, ok := (boardHit{}).hoverIndex(); ok {
		t.Fatal("expected no hover outside boards")
	}
}

// loadReadyModel loads ready model.
func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

// applyMsg applies msg.
func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

// applyCmd applies cmd.
func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

// keyRune returns a printable key press.
func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// typeText sends each rune of s as a key press.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		updated, _ := m.Update(keyRune(r))
		m = updated.(Model)
	}
	return m
}

// todoCell returns a screen cell over row idx of the visible board col.
func todoCell(m Model, col, idx int) (int, int) {
	lay := m.layout()
	return col*lay.outerWidth + 3, boardTop + 3 + 2*idx
}

// headerCell returns a screen cell over the header of the visible board col.
func headerCell(m Model, col int) (int, int) {
	lay := m.layout()
	return col*lay.outerWidth + 3, boardTop + 1
}

// stripView renders the model without ANSI styling.
func stripView(m Model) string {
	return ansi.Strip(m.renderContent())
}

// todoNames returns the names of todos in order.
func todoNames(todos []domain.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, todo := range todos {
		out = append(out, todo.Name)
	}
	return out
}
