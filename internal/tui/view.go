package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/todoboard/internal/app"
	"github.com/evanschultz/todoboard/internal/reorder"
)

// boardTop is the screen row of the first board border.
const boardTop = 2

// footerLines counts the status line and the bordered help line.
const footerLines = 3

// minInnerHeight keeps room for a header, both drop slots and one row.
const minInnerHeight = 5

var (
	accentColor = lipgloss.Color("62")
	mutedColor  = lipgloss.Color("241")
	dimColor    = lipgloss.Color("239")

	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle       = lipgloss.NewStyle().Foreground(dimColor)
	boardTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	controlStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	selectedTodoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	draggedTodoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Faint(true)
	separatorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	emptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// layout describes the board geometry shared by rendering and mouse hit-testing.
type layout struct {
	outerWidth  int
	innerWidth  int
	innerHeight int
	visibleRows int
	boardsShown int
}

// columnStyle returns the board column style.
func (m Model) columnStyle(selected bool) lipgloss.Style {
	border := dimColor
	if selected {
		border = accentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		MarginRight(1).
		Width(m.columnWidth)
}

// layout computes the current board geometry.
func (m Model) layout() layout {
	outer := max(1, lipgloss.Width(m.columnStyle(false).Render("")))
	lay := layout{
		outerWidth: outer,
		innerWidth: max(4, outer-5),
	}
	lay.innerHeight = max(minInnerHeight, m.height-boardTop-2-footerLines)
	// header, top slot and the trailing area take three lines; each row carries its separator.
	lay.visibleRows = max(1, (lay.innerHeight-3)/2)
	lay.boardsShown = max(1, m.width/outer)
	return lay
}

// hitKind identifies the board region under the pointer.
type hitKind int

// hitNone and related constants define board regions.
const (
	hitNone hitKind = iota
	hitHeader
	hitAddTodo
	hitMenu
	hitTopSlot
	hitTodo
	hitTrailing
)

// boardHit reports what a screen cell maps to.
type boardHit struct {
	board int
	kind  hitKind
	index int
}

// hitTest maps a screen cell to a board region.
func (m Model) hitTest(x, y int) boardHit {
	lay := m.layout()
	if x < 0 || y < 0 || len(m.boards) == 0 {
		return boardHit{}
	}
	col := x / lay.outerWidth
	boardIdx := m.firstBoard + col
	if col >= lay.boardsShown || boardIdx >= len(m.boards) {
		return boardHit{}
	}
	// skip border, padding and the trailing margin.
	innerX := x - col*lay.outerWidth - 2
	if innerX < 0 || innerX >= lay.innerWidth {
		return boardHit{}
	}
	rel := y - boardTop - 1
	if rel < 0 || rel >= lay.innerHeight {
		return boardHit{}
	}

	board := m.boards[boardIdx]
	hit := boardHit{board: boardIdx}
	switch {
	case rel == 0:
		hit.kind = hitHeader
		switch innerX {
		case lay.innerWidth - 1:
			hit.kind = hitMenu
		case lay.innerWidth - 3:
			hit.kind = hitAddTodo
		}
		return hit
	case rel == 1:
		hit.kind = hitTopSlot
		return hit
	}
	row := (rel - 2) / 2
	idx := m.todoOffsets[board.Board.ID] + row
	if row < lay.visibleRows && idx < len(board.Todos) {
		hit.kind = hitTodo
		hit.index = idx
		return hit
	}
	hit.kind = hitTrailing
	hit.index = len(board.Todos)
	return hit
}

// hoverIndex converts a hit into the hover index reported to the reorder engine.
func (h boardHit) hoverIndex() (int, bool) {
	switch h.kind {
	case hitHeader, hitAddTodo, hitMenu, hitTopSlot:
		return reorder.HoverBeforeFirst, true
	case hitTodo, hitTrailing:
		return h.index, true
	default:
		return 0, false
	}
}

// handleMouseClick handles mouse click.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft || m.showHelp || m.mode != modeNone || m.err != nil {
		return m, nil
	}
	hit := m.hitTest(msg.X, msg.Y)
	if hit.kind == hitNone {
		return m, nil
	}
	if hit.board != m.selectedBoard {
		m.selectedBoard = hit.board
		m.selectedTodo = 0
	}
	board := m.boards[hit.board]
	switch hit.kind {
	case hitAddTodo:
		cmd := m.startInput(modeAddTodo, "", "")
		return m, cmd
	case hitMenu:
		m.mode = modeBoardMenu
		m.menuIndex = 0
		return m, nil
	case hitTodo:
		todo := board.Todos[hit.index]
		m.selectedTodo = hit.index
		m.releaseOtherDrag(board.Board.ID)
		m.engine(board.Board.ID).BeginDrag(todo)
		m.dragBoardID = board.Board.ID
		m.status = fmt.Sprintf("dragging %q", todo.Name)
	}
	m.clampSelections()
	return m, nil
}

// handleMouseMotion updates the hover of an active mouse drag.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if m.dragBoardID == "" || m.mode == modeGrab {
		return m, nil
	}
	hit := m.hitTest(msg.X, msg.Y)
	if hit.kind == hitNone || m.boards[hit.board].Board.ID != m.dragBoardID {
		return m, nil
	}
	if hover, ok := hit.hoverIndex(); ok {
		m.engine(m.dragBoardID).UpdateHover(hover)
	}
	return m, nil
}

// handleMouseRelease drops or cancels an active mouse drag.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if m.dragBoardID == "" || m.mode == modeGrab {
		return m, nil
	}
	boardID := m.dragBoardID
	engine := m.engine(boardID)
	hit := m.hitTest(msg.X, msg.Y)
	if hit.kind == hitNone || m.boards[hit.board].Board.ID != boardID {
		engine.CancelDrag()
		m.dragBoardID = ""
		m.status = "drag cancelled"
		return m, nil
	}
	if hover, ok := hit.hoverIndex(); ok {
		engine.UpdateHover(hover)
	}
	return m.commitDrop(boardID)
}

// handleMouseWheel moves the todo selection.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone || m.showHelp || len(m.boards) == 0 {
		return m, nil
	}
	if hit := m.hitTest(msg.X, msg.Y); hit.kind != hitNone && hit.board != m.selectedBoard {
		m.selectedBoard = hit.board
		m.selectedTodo = 0
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		m.selectedTodo--
	case tea.MouseWheelDown:
		m.selectedTodo++
	}
	m.clampSelections()
	return m, nil
}

// View renders the current model state.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// renderContent renders the screen text for the current state.
func (m Model) renderContent() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n\npress ctrl+r to retry • q quit\n"
	}
	if !m.ready {
		return "loading..."
	}

	header := titleStyle.Render("todoboard") + statusStyle.Render("  ["+m.modeLabel()+"]")
	if board, ok := m.currentBoard(); ok {
		header += "  " + board.Name
	}

	var body string
	if len(m.boards) == 0 {
		body = strings.Join([]string{
			"No boards yet.",
			"Press N to create your first board.",
			"Press q to quit.",
		}, "\n")
	} else {
		lay := m.layout()
		last := min(len(m.boards), m.firstBoard+lay.boardsShown)
		columns := make([]string, 0, last-m.firstBoard)
		for idx := m.firstBoard; idx < last; idx++ {
			columns = append(columns, m.renderBoard(idx, lay))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	}

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpText := helpBubble.View(m.keys)
	if m.mode == modeGrab {
		helpText = helpBubble.ShortHelpView(m.keys.grabHelp())
	}
	helpLine := lipgloss.NewStyle().
		Foreground(mutedColor).
		BorderTop(true).
		BorderForeground(dimColor).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpText)

	bodyHeight := max(1, m.height-boardTop-footerLines)
	content := strings.Join([]string{
		header,
		"",
		fitLines(body, bodyHeight),
		statusStyle.Render(m.status),
		helpLine,
	}, "\n")

	if overlay := m.renderOverlay(); overlay != "" {
		content = overlayOnContent(content, overlay, max(1, m.width), max(1, m.height))
	}
	return content
}

// modeLabel returns the header label of the active mode.
func (m Model) modeLabel() string {
	switch m.mode {
	case modeGrab:
		return "move"
	case modeAddTodo:
		return "new todo"
	case modeRenameTodo:
		return "rename todo"
	case modeAddBoard:
		return "new board"
	case modeRenameBoard:
		return "rename board"
	case modeBoardMenu:
		return "menu"
	case modeConfirm:
		return "confirm"
	}
	if m.dragBoardID != "" {
		return "drag"
	}
	return "normal"
}

// renderBoard renders one board column.
func (m Model) renderBoard(boardIdx int, lay layout) string {
	board := m.boards[boardIdx]
	todos := board.Todos
	engine := m.engine(board.Board.ID)
	selectedBoard := boardIdx == m.selectedBoard
	width := lay.innerWidth
	bar := separatorStyle.Render(strings.Repeat("─", width))

	lines := make([]string, 0, lay.innerHeight)
	lines = append(lines, m.renderBoardHeader(board, width))

	if len(todos) > 0 && engine.Separator(0, len(todos)) == reorder.SeparatorTop {
		lines = append(lines, bar)
	} else {
		lines = append(lines, "")
	}

	offset := m.todoOffsets[board.Board.ID]
	last := min(len(todos), offset+lay.visibleRows)
	for idx := offset; idx < last; idx++ {
		todo := todos[idx]
		selected := selectedBoard && idx == m.selectedTodo
		prefix := "  "
		if selected {
			prefix = "│ "
		}
		row := prefix + truncate(todo.Name, width-2)
		switch {
		case engine.IsDragging(todo.ID):
			row = draggedTodoStyle.Render(row)
		case selected:
			row = selectedTodoStyle.Render(row)
		}
		lines = append(lines, row)

		switch engine.Separator(idx, len(todos)) {
		case reorder.SeparatorBottom, reorder.SeparatorTrailing:
			lines = append(lines, bar)
		default:
			lines = append(lines, "")
		}
	}

	switch {
	case len(todos) == 0:
		lines = append(lines, emptyStyle.Render("(empty)"))
	case last < len(todos):
		lines = append(lines, emptyStyle.Render(fmt.Sprintf("↓ %d more", len(todos)-last)))
	case engine.Active():
		lines = append(lines, emptyStyle.Render("drop here"))
	}

	body := fitLines(strings.Join(lines, "\n"), lay.innerHeight)
	return m.columnStyle(selectedBoard).Render(body)
}

// renderBoardHeader renders "name count" with the add and menu controls right-aligned.
func (m Model) renderBoardHeader(board app.BoardTodos, width int) string {
	const controls = "+ ⋮"
	count := ""
	if m.showCounts {
		count = fmt.Sprintf(" %d", len(board.Todos))
	}
	nameWidth := max(1, width-len([]rune(controls))-1-len(count))
	left := truncate(board.Board.Name, nameWidth) + count
	pad := max(1, width-lipgloss.Width(left)-lipgloss.Width(controls))
	return boardTitleStyle.Render(left) + strings.Repeat(" ", pad) + controlStyle.Render(controls)
}

// renderOverlay renders the active modal, if any.
func (m Model) renderOverlay() string {
	boxWidth := clamp(m.width-8, 24, 72)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Width(boxWidth)
	hint := statusStyle.Render

	if m.showHelp {
		body := m.markdown.render(m.helpMarkdown(), boxWidth-4)
		return box.Render(titleStyle.Render("todoboard help") + "\n\n" + body + "\n\n" + hint("? or esc to close"))
	}

	switch m.mode {
	case modeAddTodo, modeRenameTodo, modeAddBoard, modeRenameBoard:
		title := map[inputMode]string{
			modeAddTodo:     "New todo",
			modeRenameTodo:  "Rename todo",
			modeAddBoard:    "New board",
			modeRenameBoard: "Rename board",
		}[m.mode]
		return box.Render(titleStyle.Render(title) + "\n\n" + m.input.View() + "\n\n" + hint("enter save • esc cancel"))
	case modeBoardMenu:
		board, _ := m.currentBoard()
		items := make([]string, 0, len(boardMenuItems))
		for idx, item := range boardMenuItems {
			if idx == m.menuIndex {
				items = append(items, selectedTodoStyle.Render("> "+item))
				continue
			}
			items = append(items, "  "+item)
		}
		return box.Render(titleStyle.Render(board.Name) + "\n\n" + strings.Join(items, "\n") + "\n\n" + hint("enter select • esc close"))
	case modeConfirm:
		what := "todo"
		if m.pendingConfirm.kind == confirmDeleteBoard {
			what = "board"
		}
		question := fmt.Sprintf("Delete %s %q?", what, m.pendingConfirm.label)
		if what == "board" {
			question += "\nIts todos are deleted too."
		}
		return box.Render(titleStyle.Render("Confirm") + "\n\n" + question + "\n\n" + hint("y confirm • n cancel"))
	}
	return ""
}

// helpMarkdown builds the help overlay document from the active key map.
func (m Model) helpMarkdown() string {
	grab := m.keys.grab.Help().Key
	var b strings.Builder
	b.WriteString("## Moving todos\n\n")
	b.WriteString("Drag a todo with the mouse and release it over another row to drop it below that row. ")
	b.WriteString("Release over the board header to move it first, or over the empty area below the list to move it last. ")
	b.WriteString("Releasing outside the board cancels the move.\n\n")
	fmt.Fprintf(&b, "With the keyboard press `%s` to grab the selected todo, `j`/`k` to move the drop marker, `enter` to drop and `esc` to cancel.\n\n", grab)
	b.WriteString("## Keys\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	overlayLayer := lipgloss.NewLayer(centered).X(0).Y(0).Z(10)
	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
