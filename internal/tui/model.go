package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/evanschultz/todoboard/internal/app"
	"github.com/evanschultz/todoboard/internal/domain"
	"github.com/evanschultz/todoboard/internal/reorder"
)

// Service represents service data used by this package.
type Service interface {
	BoardView(context.Context) ([]app.BoardTodos, error)
	CreateBoard(context.Context, string) (domain.Board, error)
	RenameBoard(context.Context, string, string) (domain.Board, error)
	DeleteBoard(context.Context, string) error
	CreateTodo(context.Context, string, string) (domain.Todo, error)
	RenameTodo(context.Context, string, string) (domain.Todo, error)
	DeleteTodo(context.Context, string) error
	SetBoardTodos(context.Context, string, []domain.Todo) ([]domain.Todo, error)
}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeGrab
	modeAddTodo
	modeRenameTodo
	modeAddBoard
	modeRenameBoard
	modeBoardMenu
	modeConfirm
)

// board menu entries, in display order.
const (
	menuAddTodo = iota
	menuRenameBoard
	menuDeleteBoard
)

// boardMenuItems stores the board dropdown labels.
var boardMenuItems = []string{"Add todo", "Rename board", "Delete board"}

// confirmKind identifies what a pending confirmation deletes.
type confirmKind int

const (
	confirmDeleteTodo confirmKind = iota
	confirmDeleteBoard
)

// confirmAction holds one pending destructive action.
type confirmAction struct {
	kind  confirmKind
	id    string
	label string
}

// Model is the bubbletea model for the board screen.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int
	err    error

	status string

	help     help.Model
	keys     keyMap
	showHelp bool
	markdown *markdownRenderer

	boards        []app.BoardTodos
	selectedBoard int
	selectedTodo  int
	firstBoard    int
	todoOffsets   map[string]int

	// engines holds one reorder engine per board id.
	engines     map[string]*reorder.Engine
	dragBoardID string
	orderSaves  map[string]orderSave

	mode           inputMode
	input          textinput.Model
	editingID      string
	menuIndex      int
	pendingConfirm confirmAction

	confirmDelete bool
	showCounts    bool
	columnWidth   int

	pendingBoardID     string
	pendingFocusTodoID string

	copyText ClipboardWriter
	logEvent func(string, ...any)
}

// orderSave tracks the order publish of one board. Saves for a board run one at a time.
type orderSave struct {
	inFlight bool
	// dirty marks a newer order dropped while a save was in flight.
	dirty bool
}

// loadedMsg carries message data through update handling.
type loadedMsg struct {
	boards []app.BoardTodos
	err    error
}

// actionMsg carries message data through update handling.
type actionMsg struct {
	err         error
	status      string
	reload      bool
	boardID     string
	focusTodoID string
}

// orderSavedMsg reports the outcome of publishing one board's new order.
type orderSavedMsg struct {
	boardID string
	todos   []domain.Todo
	err     error
}

// copiedMsg reports a clipboard write.
type copiedMsg struct {
	name string
	err  error
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:         svc,
		status:      "loading...",
		help:        h,
		keys:        newKeyMap(),
		markdown:    &markdownRenderer{},
		todoOffsets: map[string]int{},
		engines:     map[string]*reorder.Engine{},
		orderSaves:  map[string]orderSave{},
		copyText:    clipboard.WriteAll,
	}
	m.applyRuntimeConfig(DefaultRuntimeConfig())
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.clampSelections()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.boards = msg.boards
		if m.pendingBoardID != "" {
			if idx, ok := m.boardIndex(m.pendingBoardID); ok {
				m.selectedBoard = idx
			}
			m.pendingBoardID = ""
		}
		if m.pendingFocusTodoID != "" {
			m.focusTodo(m.pendingFocusTodoID)
			m.pendingFocusTodoID = ""
		}
		m.clampSelections()
		if m.status == "" || m.status == "loading..." {
			m.status = "ready"
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			m.logf("board action failed", "err", msg.err)
			return m, m.loadData
		}
		if msg.status != "" {
			m.status = msg.status
			m.logf(msg.status, "board_id", msg.boardID, "todo_id", msg.focusTodoID)
		}
		if msg.boardID != "" {
			m.pendingBoardID = msg.boardID
		}
		if msg.focusTodoID != "" {
			m.pendingFocusTodoID = msg.focusTodoID
		}
		if msg.reload {
			return m, m.loadData
		}
		return m, nil

	case orderSavedMsg:
		state := m.orderSaves[msg.boardID]
		delete(m.orderSaves, msg.boardID)
		if msg.err != nil {
			m.status = "reorder failed: " + msg.err.Error()
			m.logf("todo order save failed", "board_id", msg.boardID, "err", msg.err)
			return m, m.loadData
		}
		if state.dirty {
			m.logf("todo order superseded", "board_id", msg.boardID)
			return m, m.queueOrderSave(msg.boardID)
		}
		if idx, ok := m.boardIndex(msg.boardID); ok && msg.todos != nil {
			m.boards = slices.Clone(m.boards)
			m.boards[idx].Todos = msg.todos
		}
		m.logf("todo order saved", "board_id", msg.boardID, "count", len(msg.todos))
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("copied %q", msg.name)
		return m, nil

	case tea.KeyPressMsg:
		if m.showHelp {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case modeNone:
			return m.handleNormalModeKey(msg)
		case modeGrab:
			return m.handleGrabKey(msg)
		case modeBoardMenu:
			return m.handleBoardMenuKey(msg)
		case modeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleInputModeKey(msg)
		}

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	default:
		if m.mode != modeNone && m.mode != modeGrab && m.mode != modeBoardMenu && m.mode != modeConfirm {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// loadData loads required data for the current operation.
func (m Model) loadData() tea.Msg {
	boards, err := m.svc.BoardView(context.Background())
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{boards: boards}
}

// handleHelpKey closes the help overlay.
func (m Model) handleHelpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp), key.Matches(msg, m.keys.cancel), msg.String() == "q":
		m.showHelp = false
	}
	return m, nil
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.reload):
			m.status = "reloading..."
			return m, m.loadData
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.loadData
	case key.Matches(msg, m.keys.addBoard):
		cmd := m.startInput(modeAddBoard, "", "")
		return m, cmd
	}

	if len(m.boards) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.boardLeft):
		if m.selectedBoard > 0 {
			m.selectedBoard--
			m.selectedTodo = 0
		}
	case key.Matches(msg, m.keys.boardRight):
		if m.selectedBoard < len(m.boards)-1 {
			m.selectedBoard++
			m.selectedTodo = 0
		}
	case key.Matches(msg, m.keys.todoUp):
		if m.selectedTodo > 0 {
			m.selectedTodo--
		}
	case key.Matches(msg, m.keys.todoDown):
		if m.selectedTodo < len(m.currentTodos())-1 {
			m.selectedTodo++
		}
	case key.Matches(msg, m.keys.grab):
		return m.startGrab()
	case key.Matches(msg, m.keys.addTodo):
		cmd := m.startInput(modeAddTodo, "", "")
		return m, cmd
	case key.Matches(msg, m.keys.renameTodo):
		todo, ok := m.currentTodo()
		if !ok {
			m.status = "no todo selected"
			return m, nil
		}
		cmd := m.startInput(modeRenameTodo, todo.ID, todo.Name)
		return m, cmd
	case key.Matches(msg, m.keys.deleteTodo):
		return m.requestDeleteTodo()
	case key.Matches(msg, m.keys.renameBoard):
		board, _ := m.currentBoard()
		cmd := m.startInput(modeRenameBoard, board.ID, board.Name)
		return m, cmd
	case key.Matches(msg, m.keys.deleteBoard):
		return m.requestDeleteBoard()
	case key.Matches(msg, m.keys.boardMenu):
		m.mode = modeBoardMenu
		m.menuIndex = 0
		return m, nil
	case key.Matches(msg, m.keys.copyTodo):
		return m.copySelectedTodo()
	}
	m.clampSelections()
	return m, nil
}

// handleGrabKey moves the drop marker of a keyboard grab.
func (m Model) handleGrabKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	engine := m.engine(m.dragBoardID)
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.todoUp):
		hover, _ := engine.Hover()
		engine.UpdateHover(max(reorder.HoverBeforeFirst, hover-1))
	case key.Matches(msg, m.keys.todoDown):
		hover, _ := engine.Hover()
		engine.UpdateHover(min(len(m.boardTodos(m.dragBoardID)), hover+1))
	case key.Matches(msg, m.keys.drop), key.Matches(msg, m.keys.grab):
		m.mode = modeNone
		return m.commitDrop(m.dragBoardID)
	case key.Matches(msg, m.keys.cancel):
		engine.CancelDrag()
		m.mode = modeNone
		m.dragBoardID = ""
		m.status = "move cancelled"
	}
	return m, nil
}

// handleBoardMenuKey drives the board dropdown.
func (m Model) handleBoardMenuKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.boardMenu):
		m.mode = modeNone
	case key.Matches(msg, m.keys.todoUp):
		m.menuIndex = wrapIndex(m.menuIndex, -1, len(boardMenuItems))
	case key.Matches(msg, m.keys.todoDown):
		m.menuIndex = wrapIndex(m.menuIndex, 1, len(boardMenuItems))
	case key.Matches(msg, m.keys.drop):
		m.mode = modeNone
		board, ok := m.currentBoard()
		if !ok {
			return m, nil
		}
		switch m.menuIndex {
		case menuAddTodo:
			cmd := m.startInput(modeAddTodo, "", "")
			return m, cmd
		case menuRenameBoard:
			cmd := m.startInput(modeRenameBoard, board.ID, board.Name)
			return m, cmd
		case menuDeleteBoard:
			return m.requestDeleteBoard()
		}
	}
	return m, nil
}

// handleConfirmKey resolves a pending confirmation.
func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		m.mode = modeNone
		action := m.pendingConfirm
		m.pendingConfirm = confirmAction{}
		return m, m.runConfirmed(action)
	case "n", "esc":
		m.mode = modeNone
		m.pendingConfirm = confirmAction{}
		m.status = "cancelled"
	}
	return m, nil
}

// handleInputModeKey handles input mode key.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNone
		m.editingID = ""
		m.input.Blur()
		m.status = "cancelled"
		return m, nil
	case "enter":
		return m.submitInputMode()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startInput opens the name prompt for one input mode.
func (m *Model) startInput(mode inputMode, editingID, value string) tea.Cmd {
	if mode == modeAddTodo || mode == modeRenameBoard {
		if _, ok := m.currentBoard(); !ok {
			m.status = "no board selected"
			return nil
		}
	}
	m.mode = mode
	m.editingID = editingID
	placeholder := app.DefaultTodoName
	if mode == modeAddBoard || mode == modeRenameBoard {
		placeholder = app.DefaultBoardName
	}
	m.input = newModalInput("name: ", placeholder, value, 120)
	return m.input.Focus()
}

// submitInputMode submits input mode.
func (m Model) submitInputMode() (tea.Model, tea.Cmd) {
	mode := m.mode
	id := m.editingID
	name := strings.TrimSpace(m.input.Value())
	m.mode = modeNone
	m.editingID = ""
	m.input.Blur()

	svc := m.svc
	switch mode {
	case modeAddTodo:
		board, ok := m.currentBoard()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			todo, err := svc.CreateTodo(context.Background(), board.ID, name)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "todo added", reload: true, boardID: board.ID, focusTodoID: todo.ID}
		}
	case modeRenameTodo:
		if name == "" {
			m.status = "name cannot be empty"
			return m, nil
		}
		return m, func() tea.Msg {
			todo, err := svc.RenameTodo(context.Background(), id, name)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "todo renamed", reload: true, boardID: todo.BoardID, focusTodoID: todo.ID}
		}
	case modeAddBoard:
		return m, func() tea.Msg {
			board, err := svc.CreateBoard(context.Background(), name)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "board added", reload: true, boardID: board.ID}
		}
	case modeRenameBoard:
		if name == "" {
			m.status = "name cannot be empty"
			return m, nil
		}
		return m, func() tea.Msg {
			board, err := svc.RenameBoard(context.Background(), id, name)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "board renamed", reload: true, boardID: board.ID}
		}
	}
	return m, nil
}

// requestDeleteTodo deletes the selected todo, asking first when configured.
func (m Model) requestDeleteTodo() (tea.Model, tea.Cmd) {
	todo, ok := m.currentTodo()
	if !ok {
		m.status = "no todo selected"
		return m, nil
	}
	action := confirmAction{kind: confirmDeleteTodo, id: todo.ID, label: todo.Name}
	if !m.confirmDelete {
		return m, m.runConfirmed(action)
	}
	m.mode = modeConfirm
	m.pendingConfirm = action
	return m, nil
}

// requestDeleteBoard deletes the selected board, asking first when configured.
func (m Model) requestDeleteBoard() (tea.Model, tea.Cmd) {
	board, ok := m.currentBoard()
	if !ok {
		return m, nil
	}
	action := confirmAction{kind: confirmDeleteBoard, id: board.ID, label: board.Name}
	if !m.confirmDelete {
		return m, m.runConfirmed(action)
	}
	m.mode = modeConfirm
	m.pendingConfirm = action
	return m, nil
}

// runConfirmed builds the command for one confirmed deletion.
func (m Model) runConfirmed(action confirmAction) tea.Cmd {
	svc := m.svc
	switch action.kind {
	case confirmDeleteTodo:
		return func() tea.Msg {
			if err := svc.DeleteTodo(context.Background(), action.id); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "todo deleted", reload: true}
		}
	case confirmDeleteBoard:
		return func() tea.Msg {
			if err := svc.DeleteBoard(context.Background(), action.id); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "board deleted", reload: true}
		}
	}
	return nil
}

// copySelectedTodo copies the selected todo name.
func (m Model) copySelectedTodo() (tea.Model, tea.Cmd) {
	todo, ok := m.currentTodo()
	if !ok {
		m.status = "no todo selected"
		return m, nil
	}
	write := m.copyText
	return m, func() tea.Msg {
		return copiedMsg{name: todo.Name, err: write(todo.Name)}
	}
}

// startGrab begins a keyboard move of the selected todo.
func (m Model) startGrab() (tea.Model, tea.Cmd) {
	board, ok := m.currentBoard()
	if !ok {
		return m, nil
	}
	todo, ok := m.currentTodo()
	if !ok {
		m.status = "no todo selected"
		return m, nil
	}
	m.releaseOtherDrag(board.ID)
	engine := m.engine(board.ID)
	engine.BeginDrag(todo)
	engine.UpdateHover(m.selectedTodo)
	m.dragBoardID = board.ID
	m.mode = modeGrab
	m.status = fmt.Sprintf("moving %q", todo.Name)
	return m, nil
}

// commitDrop applies a finished drag to the board and publishes the new order.
func (m Model) commitDrop(boardID string) (tea.Model, tea.Cmd) {
	engine := m.engine(boardID)
	m.dragBoardID = ""
	idx, ok := m.boardIndex(boardID)
	if !ok {
		engine.CancelDrag()
		return m, nil
	}
	dragged, _ := engine.Dragging()
	current := m.boards[idx].Todos
	next, changed := engine.CommitDrop(current)
	if !changed || slices.Equal(domain.TodoIDs(current), domain.TodoIDs(next)) {
		m.status = "order unchanged"
		return m, nil
	}

	m.boards = slices.Clone(m.boards)
	m.boards[idx].Todos = domain.Positions(next)
	m.selectedBoard = idx
	m.focusTodo(dragged.ID)
	m.clampSelections()
	m.status = fmt.Sprintf("moved %q", dragged.Name)
	return m, m.queueOrderSave(boardID)
}

// queueOrderSave publishes the board's current order, or marks it for a
// follow-up save when an earlier save of that board has not finished.
func (m Model) queueOrderSave(boardID string) tea.Cmd {
	state := m.orderSaves[boardID]
	if state.inFlight {
		state.dirty = true
		m.orderSaves[boardID] = state
		return nil
	}
	todos := m.boardTodos(boardID)
	if todos == nil {
		return nil
	}
	m.orderSaves[boardID] = orderSave{inFlight: true}
	return m.saveOrderCmd(boardID, todos)
}

// releaseOtherDrag cancels a drag still held by a board other than boardID.
func (m *Model) releaseOtherDrag(boardID string) {
	if m.dragBoardID != "" && m.dragBoardID != boardID {
		m.engine(m.dragBoardID).CancelDrag()
	}
	m.dragBoardID = ""
}

// saveOrderCmd publishes a reordered list to the service.
func (m Model) saveOrderCmd(boardID string, ordered []domain.Todo) tea.Cmd {
	svc := m.svc
	ordered = slices.Clone(ordered)
	return func() tea.Msg {
		saved, err := svc.SetBoardTodos(context.Background(), boardID, ordered)
		return orderSavedMsg{boardID: boardID, todos: saved, err: err}
	}
}

// applyRuntimeConfig applies runtime config.
func (m *Model) applyRuntimeConfig(cfg RuntimeConfig) {
	m.confirmDelete = cfg.ConfirmDelete
	m.showCounts = cfg.ShowCounts
	m.columnWidth = cfg.ColumnWidth
	if m.columnWidth <= 0 {
		m.columnWidth = DefaultRuntimeConfig().ColumnWidth
	}
	m.keys.applyConfig(cfg.Keys)
}

// engine returns the reorder engine for a board, creating it on first use.
func (m Model) engine(boardID string) *reorder.Engine {
	if e, ok := m.engines[boardID]; ok {
		return e
	}
	e := &reorder.Engine{}
	m.engines[boardID] = e
	return e
}

// boardIndex returns the index of a board id.
func (m Model) boardIndex(boardID string) (int, bool) {
	for idx, b := range m.boards {
		if b.Board.ID == boardID {
			return idx, true
		}
	}
	return 0, false
}

// boardTodos returns the todos of one board id.
func (m Model) boardTodos(boardID string) []domain.Todo {
	if idx, ok := m.boardIndex(boardID); ok {
		return m.boards[idx].Todos
	}
	return nil
}

// currentBoard returns current board.
func (m Model) currentBoard() (domain.Board, bool) {
	if len(m.boards) == 0 {
		return domain.Board{}, false
	}
	return m.boards[clamp(m.selectedBoard, 0, len(m.boards)-1)].Board, true
}

// currentTodos returns the todos of the selected board.
func (m Model) currentTodos() []domain.Todo {
	if len(m.boards) == 0 {
		return nil
	}
	return m.boards[clamp(m.selectedBoard, 0, len(m.boards)-1)].Todos
}

// currentTodo returns current todo.
func (m Model) currentTodo() (domain.Todo, bool) {
	todos := m.currentTodos()
	if len(todos) == 0 {
		return domain.Todo{}, false
	}
	return todos[clamp(m.selectedTodo, 0, len(todos)-1)], true
}

// focusTodo selects a todo by id on the selected board.
func (m *Model) focusTodo(todoID string) {
	for bIdx, b := range m.boards {
		for tIdx, t := range b.Todos {
			if t.ID == todoID {
				m.selectedBoard = bIdx
				m.selectedTodo = tIdx
				return
			}
		}
	}
}

// clampSelections keeps selections in range and scrolls them into view.
func (m *Model) clampSelections() {
	if len(m.boards) == 0 {
		m.selectedBoard = 0
		m.selectedTodo = 0
		m.firstBoard = 0
		if m.mode == modeGrab {
			m.mode = modeNone
		}
		return
	}
	m.selectedBoard = clamp(m.selectedBoard, 0, len(m.boards)-1)
	m.selectedTodo = clamp(m.selectedTodo, 0, len(m.currentTodos())-1)
	if m.mode == modeGrab {
		if _, ok := m.boardIndex(m.dragBoardID); !ok {
			m.mode = modeNone
			m.dragBoardID = ""
		}
	}

	lay := m.layout()
	if m.selectedBoard < m.firstBoard {
		m.firstBoard = m.selectedBoard
	}
	if m.selectedBoard >= m.firstBoard+lay.boardsShown {
		m.firstBoard = m.selectedBoard - lay.boardsShown + 1
	}
	m.firstBoard = clamp(m.firstBoard, 0, max(0, len(m.boards)-lay.boardsShown))

	board := m.boards[m.selectedBoard]
	offset := m.todoOffsets[board.Board.ID]
	if m.selectedTodo < offset {
		offset = m.selectedTodo
	}
	if m.selectedTodo >= offset+lay.visibleRows {
		offset = m.selectedTodo - lay.visibleRows + 1
	}
	m.todoOffsets[board.Board.ID] = clamp(offset, 0, max(0, len(board.Todos)-lay.visibleRows))
}

// logf forwards one event to the optional event log.
func (m Model) logf(msg string, keyvals ...any) {
	if m.logEvent != nil {
		m.logEvent(msg, keyvals...)
	}
}

// newModalInput constructs modal input.
func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// wrapIndex wraps index.
func wrapIndex(current, delta, total int) int {
	if total <= 0 {
		return 0
	}
	next := (current + delta) % total
	if next < 0 {
		next += total
	}
	return next
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
